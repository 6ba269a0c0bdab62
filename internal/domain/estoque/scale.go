package estoque

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Decimales que admiten las columnas NUMERIC(14,3) de cantidades y NUMERIC(14,2) de valores.
const (
	QuantityPlaces int32 = 3
	MoneyPlaces    int32 = 2
)

// CheckPlaces rechaza v si tiene más decimales significativos que places.
func CheckPlaces(field string, v decimal.Decimal, places int32) error {
	if !v.Equal(v.Round(places)) {
		return domain.Invalid(fmt.Sprintf("%s admite como máximo %d decimales (recibido %s)", field, places, v))
	}
	return nil
}

// CheckQuantity valida la escala de una cantidad.
func CheckQuantity(field string, v decimal.Decimal) error {
	return CheckPlaces(field, v, QuantityPlaces)
}

// CheckMoney valida la escala de un precio o costo.
func CheckMoney(field string, v decimal.Decimal) error {
	return CheckPlaces(field, v, MoneyPlaces)
}
