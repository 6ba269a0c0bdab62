package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// CompraRepository define el puerto de persistencia para compras y sus líneas.
type CompraRepository interface {
	Create(ctx context.Context, compra *entity.Compra) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Compra, error)
	// GetForUpdate bloquea la cabecera de la compra durante la transacción.
	GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Compra, error)
	Update(ctx context.Context, compra *entity.Compra) error
	List(ctx context.Context, tenantID int64, status string, limit, offset int) ([]*entity.Compra, int64, error)
	Delete(ctx context.Context, tenantID, id int64) error

	ListItems(ctx context.Context, compraID int64) ([]*entity.ItemCompra, error)
	UpsertItem(ctx context.Context, item *entity.ItemCompra) error
	DeleteItem(ctx context.Context, compraID, insumoID int64) error
	DeleteItems(ctx context.Context, compraID int64) error
}
