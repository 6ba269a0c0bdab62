package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompraItemRequest línea de una compra.
type CompraItemRequest struct {
	InsumoID  int64           `json:"insumo_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// SaveCompraRequest body para crear o editar una compra. En la edición las líneas
// ausentes se eliminan y las presentes se crean o actualizan.
type SaveCompraRequest struct {
	SupplierID           int64               `json:"supplier_id" validate:"required"`
	OrderDate            time.Time           `json:"order_date"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date"`
	InvoiceNumber        string              `json:"invoice_number" validate:"max=60"`
	Notes                string              `json:"notes" validate:"max=1000"`
	Items                []CompraItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReceiveItemRequest cantidad recibida ACUMULADA (no incremental) de un insumo.
type ReceiveItemRequest struct {
	InsumoID         int64           `json:"insumo_id" validate:"required"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	InvoiceNumber    string          `json:"invoice_number" validate:"max=60"`
}

// ReceiveCompraRequest body para POST /api/compras/:id/receber.
type ReceiveCompraRequest struct {
	DeliveryDate  *time.Time           `json:"delivery_date"`
	InvoiceNumber string               `json:"invoice_number" validate:"max=60"`
	Items         []ReceiveItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ItemCompraResponse salida de una línea.
type ItemCompraResponse struct {
	InsumoID         int64           `json:"insumo_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	PendingQuantity  decimal.Decimal `json:"pending_quantity"`
	Complete         bool            `json:"complete"`
	Notes            string          `json:"notes"`
}

// CompraResponse salida de una compra con sus líneas.
type CompraResponse struct {
	ID                   int64                `json:"id"`
	SupplierID           int64                `json:"supplier_id"`
	SupplierName         string               `json:"supplier_name,omitempty"`
	OrderDate            time.Time            `json:"order_date"`
	ExpectedDeliveryDate *time.Time           `json:"expected_delivery_date,omitempty"`
	DeliveryDate         *time.Time           `json:"delivery_date,omitempty"`
	InvoiceNumber        string               `json:"invoice_number"`
	TotalValue           decimal.Decimal      `json:"total_value"`
	Status               string               `json:"status"`
	Notes                string               `json:"notes"`
	Items                []ItemCompraResponse `json:"items,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// CompraListResponse lista paginada de compras (sin líneas).
type CompraListResponse struct {
	Items []CompraResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ReceiveCompraResponse resultado de una recepción: compra actualizada y entradas generadas.
type ReceiveCompraResponse struct {
	Compra    CompraResponse     `json:"compra"`
	Movements []MovementResponse `json:"movements"`
}
