package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// LoteRepository acceso a lotes de insumo (saldos por lote).
type LoteRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Lote, error)
	GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Lote, error)
	UpdateQuantity(ctx context.Context, tenantID, id int64, quantity decimal.Decimal) error
}
