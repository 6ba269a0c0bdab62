package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra. El estado se deriva de la recepción; no se asigna libremente.
const (
	CompraStatusAberta     = "ABERTA"
	CompraStatusParcial    = "PARCIAL"
	CompraStatusFinalizada = "FINALIZADA"
	CompraStatusCancelada  = "CANCELADA"
)

// Compra representa una orden de compra a proveedor.
type Compra struct {
	ID                   int64           `db:"id"`
	TenantID             int64           `db:"tenant_id"`
	SupplierID           int64           `db:"supplier_id"`
	SupplierName         string          `db:"supplier_name"` // solo lectura
	OrderDate            time.Time       `db:"order_date"`
	ExpectedDeliveryDate *time.Time      `db:"expected_delivery_date"`
	DeliveryDate         *time.Time      `db:"delivery_date"`
	InvoiceNumber        string          `db:"invoice_number"`
	TotalValue           decimal.Decimal `db:"total_value"`
	Status               string          `db:"status"`
	Notes                string          `db:"notes"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
	Items                []*ItemCompra   `db:"-"`
}

// IsTerminal indica si la compra ya no admite cambios (FINALIZADA o CANCELADA).
func (c *Compra) IsTerminal() bool {
	return c.Status == CompraStatusFinalizada || c.Status == CompraStatusCancelada
}

// ItemCompra línea de una compra; clave compuesta (CompraID, InsumoID).
type ItemCompra struct {
	CompraID         int64           `db:"compra_id"`
	InsumoID         int64           `db:"insumo_id"`
	Quantity         decimal.Decimal `db:"quantity"`
	UnitPrice        decimal.Decimal `db:"unit_price"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	ReceivedQuantity decimal.Decimal `db:"received_quantity"` // acumulado absoluto
	PendingQuantity  decimal.Decimal `db:"pending_quantity"`
	Notes            string          `db:"notes"`
}

// IsComplete indica si lo recibido cubre lo pedido.
func (i *ItemCompra) IsComplete() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}

// Recalculate actualiza total y pendiente a partir de cantidad, precio y recibido.
func (i *ItemCompra) Recalculate() {
	i.TotalPrice = i.Quantity.Mul(i.UnitPrice)
	pending := i.Quantity.Sub(i.ReceivedQuantity)
	if pending.LessThan(decimal.Zero) {
		pending = decimal.Zero
	}
	i.PendingQuantity = pending
}
