package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// InventarioRepository define el puerto de persistencia para inventarios físicos.
type InventarioRepository interface {
	Create(ctx context.Context, inv *entity.Inventario) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Inventario, error)
	GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Inventario, error)
	GetByCode(ctx context.Context, tenantID int64, code string) (*entity.Inventario, error)
	UpdateStatus(ctx context.Context, inv *entity.Inventario) error

	ListItems(ctx context.Context, inventarioID int64) ([]*entity.ItemInventario, error)
	CreateItem(ctx context.Context, item *entity.ItemInventario) error
	UpdateItem(ctx context.Context, item *entity.ItemInventario) error
}
