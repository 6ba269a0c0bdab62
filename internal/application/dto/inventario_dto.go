package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventarioRequest body para abrir una sesión de conteo.
type CreateInventarioRequest struct {
	Code      string    `json:"code" validate:"required,max=50"`
	StartDate time.Time `json:"start_date"`
	Notes     string    `json:"notes" validate:"max=1000"`
}

// AddInventarioItemRequest agrega una línea; el saldo del sistema se toma en este momento.
type AddInventarioItemRequest struct {
	InsumoID         int64            `json:"insumo_id" validate:"required"`
	LoteID           *int64           `json:"lote_id,omitempty"`
	PhysicalQuantity *decimal.Decimal `json:"physical_quantity,omitempty"`
	Justification    string           `json:"justification" validate:"max=500"`
}

// UpdateInventarioItem conteo de una línea existente.
type UpdateInventarioItem struct {
	ItemID           int64           `json:"item_id" validate:"required"`
	PhysicalQuantity decimal.Decimal `json:"physical_quantity"`
	Justification    string          `json:"justification" validate:"max=500"`
}

// UpdateInventarioItemsRequest actualización en lote de conteos.
type UpdateInventarioItemsRequest struct {
	Items []UpdateInventarioItem `json:"items" validate:"required,min=1,dive"`
}

// ItemInventarioResponse salida de una línea de inventario.
type ItemInventarioResponse struct {
	ID               int64            `json:"id"`
	InsumoID         int64            `json:"insumo_id"`
	LoteID           *int64           `json:"lote_id,omitempty"`
	SystemQuantity   decimal.Decimal  `json:"system_quantity"`
	PhysicalQuantity *decimal.Decimal `json:"physical_quantity"`
	Difference       *decimal.Decimal `json:"difference"`
	Justification    string           `json:"justification"`
}

// InventarioResponse salida de una sesión con sus líneas.
type InventarioResponse struct {
	ID            int64                    `json:"id"`
	Code          string                   `json:"code"`
	StartDate     time.Time                `json:"start_date"`
	EndDate       *time.Time               `json:"end_date,omitempty"`
	Status        string                   `json:"status"`
	ResponsibleID *int64                   `json:"responsible_id,omitempty"`
	Notes         string                   `json:"notes"`
	Items         []ItemInventarioResponse `json:"items"`
	CreatedAt     time.Time                `json:"created_at"`
}

// FinalizeInventarioResponse sesión concluida y ajustes generados.
type FinalizeInventarioResponse struct {
	Inventario  InventarioResponse `json:"inventario"`
	Adjustments []MovementResponse `json:"adjustments"`
}
