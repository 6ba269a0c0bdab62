package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote lote de un insumo con su propio saldo (p. ej. por vencimiento).
type Lote struct {
	ID        int64           `db:"id"`
	TenantID  int64           `db:"tenant_id"`
	InsumoID  int64           `db:"insumo_id"`
	Code      string          `db:"code"`
	Quantity  decimal.Decimal `db:"quantity"`
	ExpiresAt *time.Time      `db:"expires_at"`
}
