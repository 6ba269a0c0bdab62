package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un inventario físico.
const (
	InventarioStatusPendente  = "PENDENTE"
	InventarioStatusConcluido = "CONCLUIDO"
	InventarioStatusCancelado = "CANCELADO"
)

// Inventario sesión de conteo físico que concilia el saldo del sistema con lo contado.
type Inventario struct {
	ID            int64             `db:"id"`
	TenantID      int64             `db:"tenant_id"`
	Code          string            `db:"code"`
	StartDate     time.Time         `db:"start_date"`
	EndDate       *time.Time        `db:"end_date"`
	Status        string            `db:"status"`
	ResponsibleID *int64            `db:"responsible_id"`
	Notes         string            `db:"notes"`
	CreatedAt     time.Time         `db:"created_at"`
	Items         []*ItemInventario `db:"-"`
}

// IsTerminal indica si la sesión ya no admite cambios en sus líneas.
func (i *Inventario) IsTerminal() bool {
	return i.Status == InventarioStatusConcluido || i.Status == InventarioStatusCancelado
}

// ItemInventario línea contada. SystemQuantity es la foto del saldo al agregar la línea.
type ItemInventario struct {
	ID               int64            `db:"id"`
	InventarioID     int64            `db:"inventario_id"`
	InsumoID         int64            `db:"insumo_id"`
	LoteID           *int64           `db:"lote_id"`
	SystemQuantity   decimal.Decimal  `db:"system_quantity"`
	PhysicalQuantity *decimal.Decimal `db:"physical_quantity"` // nil = no contado
	Difference       *decimal.Decimal `db:"difference"`
	Justification    string           `db:"justification"`
}

// SetPhysical registra la cantidad contada y recalcula la diferencia.
func (i *ItemInventario) SetPhysical(q decimal.Decimal) {
	diff := q.Sub(i.SystemQuantity)
	i.PhysicalQuantity = &q
	i.Difference = &diff
}

// SameSlot indica si la línea corresponde al mismo par (insumo, lote).
func (i *ItemInventario) SameSlot(insumoID int64, loteID *int64) bool {
	if i.InsumoID != insumoID {
		return false
	}
	if i.LoteID == nil || loteID == nil {
		return i.LoteID == nil && loteID == nil
	}
	return *i.LoteID == *loteID
}
