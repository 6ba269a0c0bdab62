package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// InsumoRepository define el puerto de persistencia para Insumo (DIP).
// Todas las consultas filtran por tenantID.
type InsumoRepository interface {
	Create(ctx context.Context, insumo *entity.Insumo) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Insumo, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene efecto dentro de una transacción.
	GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Insumo, error)
	GetByCode(ctx context.Context, tenantID int64, code string) (*entity.Insumo, error)
	// Update modifica datos administrativos; nunca toca Quantity.
	Update(ctx context.Context, insumo *entity.Insumo) error
	// UpdateBalance persiste cantidad y costo; uso exclusivo del registrador de movimientos.
	UpdateBalance(ctx context.Context, tenantID, id int64, quantity, unitCost decimal.Decimal) error
	List(ctx context.Context, tenantID int64, belowMinimum bool, limit, offset int) ([]*entity.Insumo, int64, error)
	CountDependents(ctx context.Context, tenantID, id int64) (entity.InsumoDependents, error)
	Delete(ctx context.Context, tenantID, id int64) error
}
