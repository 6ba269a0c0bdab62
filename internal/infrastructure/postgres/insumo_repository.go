package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepository)(nil)

// InsumoRepository implementación PostgreSQL de repository.InsumoRepository.
type InsumoRepository struct {
	q Querier
}

// NewInsumoRepository construye el repositorio sobre un pool o una tx.
func NewInsumoRepository(q Querier) *InsumoRepository {
	return &InsumoRepository{q: q}
}

func (r *InsumoRepository) selectInsumos() sq.SelectBuilder {
	return psql.Select(
		"i.id", "i.tenant_id", "i.code", "i.name", "i.unit_id", "u.symbol AS unit_symbol",
		"i.quantity", "i.unit_cost", "i.minimum_quantity", "i.active", "i.created_at", "i.updated_at",
	).From("insumos i").Join("unidades_medida u ON u.id = i.unit_id")
}

// Create inserta el insumo y asigna ID.
func (r *InsumoRepository) Create(ctx context.Context, i *entity.Insumo) error {
	query := `
		INSERT INTO insumos (tenant_id, code, name, unit_id, quantity, unit_cost, minimum_quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		i.TenantID, i.Code, i.Name, i.UnitID, i.Quantity, i.UnitCost, i.MinimumQuantity, i.Active, i.CreatedAt, i.UpdatedAt,
	).Scan(&i.ID)
	if err != nil {
		return wrapWrite("insert insumo", err)
	}
	return nil
}

// GetByID obtiene un insumo del tenant; (nil, nil) si no existe.
func (r *InsumoRepository) GetByID(ctx context.Context, tenantID, id int64) (*entity.Insumo, error) {
	return getOne[entity.Insumo](ctx, r.q, "get insumo",
		r.selectInsumos().Where(sq.Eq{"i.tenant_id": tenantID, "i.id": id}))
}

// GetForUpdate obtiene el insumo bloqueando la fila (SELECT ... FOR UPDATE).
func (r *InsumoRepository) GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Insumo, error) {
	return getOne[entity.Insumo](ctx, r.q, "get insumo for update",
		r.selectInsumos().Where(sq.Eq{"i.tenant_id": tenantID, "i.id": id}).Suffix("FOR UPDATE OF i"))
}

// GetByCode busca por código normalizado.
func (r *InsumoRepository) GetByCode(ctx context.Context, tenantID int64, code string) (*entity.Insumo, error) {
	return getOne[entity.Insumo](ctx, r.q, "get insumo by code",
		r.selectInsumos().Where(sq.Eq{"i.tenant_id": tenantID, "i.code": code}))
}

// Update modifica datos administrativos; la columna quantity no se toca.
func (r *InsumoRepository) Update(ctx context.Context, i *entity.Insumo) error {
	_, err := exec(ctx, r.q, "update insumo", psql.Update("insumos").
		Set("code", i.Code).
		Set("name", i.Name).
		Set("unit_id", i.UnitID).
		Set("unit_cost", i.UnitCost).
		Set("minimum_quantity", i.MinimumQuantity).
		Set("active", i.Active).
		Set("updated_at", i.UpdatedAt).
		Where(sq.Eq{"tenant_id": i.TenantID, "id": i.ID}))
	return err
}

// UpdateBalance persiste saldo y costo promedio.
func (r *InsumoRepository) UpdateBalance(ctx context.Context, tenantID, id int64, quantity, unitCost decimal.Decimal) error {
	_, err := exec(ctx, r.q, "update insumo balance", psql.Update("insumos").
		Set("quantity", quantity).
		Set("unit_cost", unitCost).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"tenant_id": tenantID, "id": id}))
	return err
}

// List lista insumos del tenant ordenados por código.
func (r *InsumoRepository) List(ctx context.Context, tenantID int64, belowMinimum bool, limit, offset int) ([]*entity.Insumo, int64, error) {
	where := insumoListFilter(tenantID, belowMinimum)
	total, err := count(ctx, r.q, "count insumos", psql.Select("COUNT(*)").From("insumos i").Where(where))
	if err != nil {
		return nil, 0, err
	}
	list, err := selectAll[entity.Insumo](ctx, r.q, "list insumos",
		r.selectInsumos().Where(where).OrderBy("i.code").Limit(uint64(limit)).Offset(uint64(offset)))
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func insumoListFilter(tenantID int64, belowMinimum bool) sq.And {
	where := sq.And{sq.Eq{"i.tenant_id": tenantID}}
	if belowMinimum {
		where = append(where, sq.Expr("i.minimum_quantity > 0 AND i.quantity < i.minimum_quantity"))
	}
	return where
}

// CountDependents cuenta movimientos, lotes y fichas técnicas que referencian al insumo.
func (r *InsumoRepository) CountDependents(ctx context.Context, tenantID, id int64) (entity.InsumoDependents, error) {
	var deps entity.InsumoDependents
	query := `
		SELECT
			(SELECT COUNT(*) FROM movimentacoes WHERE tenant_id = $1 AND insumo_id = $2),
			(SELECT COUNT(*) FROM lotes WHERE tenant_id = $1 AND insumo_id = $2),
			(SELECT COUNT(*) FROM ficha_tecnica_itens WHERE tenant_id = $1 AND insumo_id = $2)`
	if err := r.q.QueryRow(ctx, query, tenantID, id).Scan(&deps.Movements, &deps.Lots, &deps.Recipes); err != nil {
		return deps, fmt.Errorf("count insumo dependents: %w", err)
	}
	return deps, nil
}

// Delete elimina el insumo del tenant.
func (r *InsumoRepository) Delete(ctx context.Context, tenantID, id int64) error {
	_, err := exec(ctx, r.q, "delete insumo", psql.Delete("insumos").Where(sq.Eq{"tenant_id": tenantID, "id": id}))
	return err
}
