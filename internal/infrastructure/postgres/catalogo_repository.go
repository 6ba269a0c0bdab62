package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var (
	_ repository.UnidadeMedidaRepository = (*CatalogoRepository)(nil)
	_ repository.TenantRepository        = (*TenantRepository)(nil)
)

// CatalogoRepository consultas de solo lectura a unidades de medida.
type CatalogoRepository struct {
	q Querier
}

func NewCatalogoRepository(q Querier) *CatalogoRepository {
	return &CatalogoRepository{q: q}
}

// GetByID obtiene una unidad de medida.
func (r *CatalogoRepository) GetByID(ctx context.Context, id int64) (*entity.UnidadeMedida, error) {
	return getOne[entity.UnidadeMedida](ctx, r.q, "get unidade medida",
		psql.Select("id", "symbol").From("unidades_medida").Where(sq.Eq{"id": id}))
}

// FornecedorRepository proveedores por tenant.
type FornecedorRepository struct {
	q Querier
}

var _ repository.FornecedorRepository = (*FornecedorRepository)(nil)

func NewFornecedorRepository(q Querier) *FornecedorRepository {
	return &FornecedorRepository{q: q}
}

func (r *FornecedorRepository) GetByID(ctx context.Context, tenantID, id int64) (*entity.Fornecedor, error) {
	return getOne[entity.Fornecedor](ctx, r.q, "get fornecedor",
		psql.Select("id", "tenant_id", "name").From("fornecedores").Where(sq.Eq{"tenant_id": tenantID, "id": id}))
}

// TenantRepository estado de los tenants.
type TenantRepository struct {
	q Querier
}

func NewTenantRepository(q Querier) *TenantRepository {
	return &TenantRepository{q: q}
}

// IsActive indica si el tenant existe y está activo.
func (r *TenantRepository) IsActive(ctx context.Context, tenantID int64) (bool, error) {
	var active bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1 AND active)`, tenantID,
	).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("check tenant: %w", err)
	}
	return active, nil
}
