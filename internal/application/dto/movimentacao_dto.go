package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movimentacoes (movimiento manual).
// Para ADJUSTMENT se envía target_quantity (cantidad final absoluta) en lugar de quantity.
type RegisterMovementRequest struct {
	InsumoID       int64            `json:"insumo_id" validate:"required"`
	LoteID         *int64           `json:"lote_id,omitempty"`
	Type           string           `json:"type" validate:"required,oneof=IN OUT PRODUCTION DISCARD ADJUSTMENT"`
	Quantity       decimal.Decimal  `json:"quantity"`
	TargetQuantity *decimal.Decimal `json:"target_quantity,omitempty"`
	Note           string           `json:"note" validate:"max=500"`
}

// ListMovementsQuery filtros del libro de movimientos.
type ListMovementsQuery struct {
	InsumoID *int64
	Type     string
	From     *time.Time
	To       *time.Time
	PageRequest
}

// MovementResponse salida de una entrada del libro.
type MovementResponse struct {
	ID            int64           `json:"id"`
	InsumoID      int64           `json:"insumo_id"`
	LoteID        *int64          `json:"lote_id,omitempty"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TransactionID string          `json:"transaction_id"`
	SourceID      *int64          `json:"source_id,omitempty"`
	SourceType    *string         `json:"source_type,omitempty"`
	Note          string          `json:"note"`
	ResponsibleID *int64          `json:"responsible_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementTotalsResponse conteos agregados (salidas = OUT + PRODUCTION + DISCARD).
type MovementTotalsResponse struct {
	Incoming    int64 `json:"incoming"`
	Outgoing    int64 `json:"outgoing"`
	Adjustments int64 `json:"adjustments"`
}

// MovementListResponse lista paginada del libro con totales.
type MovementListResponse struct {
	Items  []MovementResponse     `json:"items"`
	Totals MovementTotalsResponse `json:"totals"`
	Page   PageResponse           `json:"page"`
}
