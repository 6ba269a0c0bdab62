package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de insumo.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypePRODUCTION = "PRODUCTION" // consumo en producción
	MovementTypeDISCARD    = "DISCARD"    // descarte / merma
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste a cantidad absoluta
)

// Tipos de documento origen de un movimiento.
const (
	SourceCompra     = "COMPRA"
	SourceInventario = "INVENTARIO"
	SourceManual     = "MANUAL"
	SourceAbertura   = "ABERTURA" // saldo inicial al crear el insumo
)

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypePRODUCTION, MovementTypeDISCARD, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// IsOutgoing indica si el tipo descuenta stock (OUT, PRODUCTION, DISCARD).
func IsOutgoing(t string) bool {
	return t == MovementTypeOUT || t == MovementTypePRODUCTION || t == MovementTypeDISCARD
}

// Movimentacao es una entrada inmutable del libro de movimientos.
// Quantity siempre es la magnitud (positiva); el signo lo da Type, y en los ajustes
// la diferencia BalanceAfter - BalanceBefore.
type Movimentacao struct {
	ID            int64           `db:"id"`
	TenantID      int64           `db:"tenant_id"`
	InsumoID      int64           `db:"insumo_id"`
	LoteID        *int64          `db:"lote_id"`
	Type          string          `db:"type"`
	Quantity      decimal.Decimal `db:"quantity"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	UnitCost      decimal.Decimal `db:"unit_cost"`
	TransactionID string          `db:"transaction_id"`
	SourceID      *int64          `db:"source_id"`
	SourceType    *string         `db:"source_type"`
	Note          string          `db:"note"`
	ResponsibleID *int64          `db:"responsible_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// SignedQuantity devuelve el aporte con signo de la entrada al saldo del insumo.
func (m *Movimentacao) SignedQuantity() decimal.Decimal {
	switch {
	case m.Type == MovementTypeIN:
		return m.Quantity
	case IsOutgoing(m.Type):
		return m.Quantity.Neg()
	default:
		return m.BalanceAfter.Sub(m.BalanceBefore)
	}
}

// MovementFilter filtros para listar el libro de movimientos.
type MovementFilter struct {
	InsumoID *int64
	Type     string
	From     *time.Time
	To       *time.Time
}

// MovementTotals conteos agregados del listado (las salidas agrupan OUT, PRODUCTION y DISCARD).
type MovementTotals struct {
	Total       int64 `db:"total"`
	Incoming    int64 `db:"incoming"`
	Outgoing    int64 `db:"outgoing"`
	Adjustments int64 `db:"adjustments"`
}
