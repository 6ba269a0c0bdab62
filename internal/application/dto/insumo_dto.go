package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInsumoRequest entrada para crear un insumo. OpeningQuantity > 0 genera
// un movimiento IN de saldo inicial.
type CreateInsumoRequest struct {
	Code            string          `json:"code" validate:"required,max=50"`
	Name            string          `json:"name" validate:"required,max=200"`
	UnitID          int64           `json:"unit_id" validate:"required"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	OpeningQuantity decimal.Decimal `json:"opening_quantity"`
}

// UpdateInsumoRequest edición administrativa (nunca cambia la cantidad).
type UpdateInsumoRequest struct {
	Code            *string          `json:"code" validate:"omitempty,max=50"`
	Name            *string          `json:"name" validate:"omitempty,max=200"`
	UnitID          *int64           `json:"unit_id"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	MinimumQuantity *decimal.Decimal `json:"minimum_quantity"`
	Active          *bool            `json:"active"`
}

// InsumoResponse salida de un insumo.
type InsumoResponse struct {
	ID              int64           `json:"id"`
	TenantID        int64           `json:"tenant_id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	UnitID          int64           `json:"unit_id"`
	UnitSymbol      string          `json:"unit_symbol"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	BelowMinimum    bool            `json:"below_minimum"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InsumoListResponse lista paginada de insumos.
type InsumoListResponse struct {
	Items []InsumoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// LedgerBalanceResponse compara el saldo guardado con el saldo reconstruido desde el libro.
type LedgerBalanceResponse struct {
	InsumoID       int64           `json:"insumo_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	LedgerQuantity decimal.Decimal `json:"ledger_quantity"`
	Entries        int             `json:"entries"`
	Consistent     bool            `json:"consistent"`
}
