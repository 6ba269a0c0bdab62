package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepository)(nil)

var inventarioColumns = []string{
	"id", "tenant_id", "code", "start_date", "end_date", "status", "responsible_id", "notes", "created_at",
}

// InventarioRepository sesiones de conteo físico y sus líneas.
type InventarioRepository struct {
	q Querier
}

// NewInventarioRepository construye el repositorio sobre un pool o una tx.
func NewInventarioRepository(q Querier) *InventarioRepository {
	return &InventarioRepository{q: q}
}

// Create inserta la sesión y asigna ID.
func (r *InventarioRepository) Create(ctx context.Context, inv *entity.Inventario) error {
	query := `
		INSERT INTO inventarios (tenant_id, code, start_date, end_date, status, responsible_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.TenantID, inv.Code, inv.StartDate, inv.EndDate, inv.Status, inv.ResponsibleID, inv.Notes, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return wrapWrite("insert inventario", err)
	}
	return nil
}

func (r *InventarioRepository) GetByID(ctx context.Context, tenantID, id int64) (*entity.Inventario, error) {
	return getOne[entity.Inventario](ctx, r.q, "get inventario",
		psql.Select(inventarioColumns...).From("inventarios").Where(sq.Eq{"tenant_id": tenantID, "id": id}))
}

func (r *InventarioRepository) GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Inventario, error) {
	return getOne[entity.Inventario](ctx, r.q, "get inventario for update",
		psql.Select(inventarioColumns...).From("inventarios").Where(sq.Eq{"tenant_id": tenantID, "id": id}).Suffix("FOR UPDATE"))
}

func (r *InventarioRepository) GetByCode(ctx context.Context, tenantID int64, code string) (*entity.Inventario, error) {
	return getOne[entity.Inventario](ctx, r.q, "get inventario by code",
		psql.Select(inventarioColumns...).From("inventarios").Where(sq.Eq{"tenant_id": tenantID, "code": code}))
}

// UpdateStatus persiste estado y fecha de cierre.
func (r *InventarioRepository) UpdateStatus(ctx context.Context, inv *entity.Inventario) error {
	_, err := exec(ctx, r.q, "update inventario status", psql.Update("inventarios").
		Set("status", inv.Status).
		Set("end_date", inv.EndDate).
		Where(sq.Eq{"tenant_id": inv.TenantID, "id": inv.ID}))
	return err
}

func (r *InventarioRepository) ListItems(ctx context.Context, inventarioID int64) ([]*entity.ItemInventario, error) {
	return selectAll[entity.ItemInventario](ctx, r.q, "list itens inventario",
		psql.Select("id", "inventario_id", "insumo_id", "lote_id", "system_quantity",
			"physical_quantity", "difference", "justification").
			From("itens_inventario").Where(sq.Eq{"inventario_id": inventarioID}).OrderBy("id"))
}

func (r *InventarioRepository) CreateItem(ctx context.Context, it *entity.ItemInventario) error {
	query, args, err := psql.Insert("itens_inventario").
		Columns("inventario_id", "insumo_id", "lote_id", "system_quantity", "physical_quantity", "difference", "justification").
		Values(it.InventarioID, it.InsumoID, it.LoteID, it.SystemQuantity, it.PhysicalQuantity, it.Difference, it.Justification).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return wrapWrite("build insert item inventario", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&it.ID); err != nil {
		return wrapWrite("insert item inventario", err)
	}
	return nil
}

func (r *InventarioRepository) UpdateItem(ctx context.Context, it *entity.ItemInventario) error {
	_, err := exec(ctx, r.q, "update item inventario", psql.Update("itens_inventario").
		Set("physical_quantity", it.PhysicalQuantity).
		Set("difference", it.Difference).
		Set("justification", it.Justification).
		Where(sq.Eq{"inventario_id": it.InventarioID, "id": it.ID}))
	return err
}
