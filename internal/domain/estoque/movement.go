package estoque

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementResult saldo resultante y magnitud que se registra en el libro.
type MovementResult struct {
	NewQuantity decimal.Decimal
	Magnitude   decimal.Decimal
}

// ApplyMovement calcula el nuevo saldo de un insumo para un movimiento.
// IN suma, OUT/PRODUCTION/DISCARD restan (sin permitir saldo insuficiente) y
// ADJUSTMENT fija la cantidad absoluta target sin verificar stock.
func ApplyMovement(kind string, current, magnitude decimal.Decimal, target *decimal.Decimal) (MovementResult, error) {
	if err := CheckQuantity("la cantidad del movimiento", magnitude); err != nil {
		return MovementResult{}, err
	}
	if target != nil {
		if err := CheckQuantity("la cantidad final del ajuste", *target); err != nil {
			return MovementResult{}, err
		}
	}
	switch {
	case kind == entity.MovementTypeIN:
		if !magnitude.GreaterThan(decimal.Zero) {
			return MovementResult{}, domain.Invalid("la cantidad del movimiento debe ser mayor que cero")
		}
		return MovementResult{NewQuantity: current.Add(magnitude), Magnitude: magnitude}, nil

	case entity.IsOutgoing(kind):
		if !magnitude.GreaterThan(decimal.Zero) {
			return MovementResult{}, domain.Invalid("la cantidad del movimiento debe ser mayor que cero")
		}
		if magnitude.GreaterThan(current) {
			return MovementResult{}, domain.InsufficientStock("stock insuficiente para esta operación")
		}
		return MovementResult{NewQuantity: current.Sub(magnitude), Magnitude: magnitude}, nil

	case kind == entity.MovementTypeADJUSTMENT:
		if target == nil || target.LessThan(decimal.Zero) {
			return MovementResult{}, domain.Invalid("el ajuste requiere una cantidad final mayor o igual a cero")
		}
		if target.Equal(current) {
			return MovementResult{}, domain.Invalid("el ajuste no modifica el saldo actual")
		}
		return MovementResult{NewQuantity: *target, Magnitude: target.Sub(current).Abs()}, nil
	}
	return MovementResult{}, domain.Invalid("tipo de movimiento inválido")
}
