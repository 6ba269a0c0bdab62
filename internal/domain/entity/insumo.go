package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insumo representa una materia prima con saldo y costo promedio ponderado.
// Quantity y UnitCost solo se modifican a través del registrador de movimientos.
type Insumo struct {
	ID              int64           `db:"id"`
	TenantID        int64           `db:"tenant_id"`
	Code            string          `db:"code"` // único por tenant, normalizado en mayúsculas
	Name            string          `db:"name"`
	UnitID          int64           `db:"unit_id"`
	UnitSymbol      string          `db:"unit_symbol"` // solo lectura (join con unidades_medida)
	Quantity        decimal.Decimal `db:"quantity"`
	UnitCost        decimal.Decimal `db:"unit_cost"` // costo promedio ponderado
	MinimumQuantity decimal.Decimal `db:"minimum_quantity"`
	Active          bool            `db:"active"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// BelowMinimum indica si el saldo actual está por debajo del mínimo configurado.
func (i *Insumo) BelowMinimum() bool {
	return i.MinimumQuantity.GreaterThan(decimal.Zero) && i.Quantity.LessThan(i.MinimumQuantity)
}

// InsumoDependents cuenta las referencias que impiden eliminar un insumo.
type InsumoDependents struct {
	Movements int64
	Lots      int64
	Recipes   int64
}

// Any indica si existe al menos una referencia.
func (d InsumoDependents) Any() bool {
	return d.Movements > 0 || d.Lots > 0 || d.Recipes > 0
}
