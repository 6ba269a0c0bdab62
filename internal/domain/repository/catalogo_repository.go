package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// UnidadeMedidaRepository consulta de unidades de medida (id → símbolo).
type UnidadeMedidaRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.UnidadeMedida, error)
}

// FornecedorRepository consulta de proveedores (id → nombre) del tenant.
type FornecedorRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Fornecedor, error)
}

// TenantRepository verificación de tenant activo (usado por el middleware HTTP).
type TenantRepository interface {
	IsActive(ctx context.Context, tenantID int64) (bool, error)
}
