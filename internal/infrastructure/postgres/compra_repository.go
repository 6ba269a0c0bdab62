package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepository)(nil)

// CompraRepository compras y sus líneas en PostgreSQL.
type CompraRepository struct {
	q Querier
}

// NewCompraRepository construye el repositorio sobre un pool o una tx.
func NewCompraRepository(q Querier) *CompraRepository {
	return &CompraRepository{q: q}
}

func selectCompras() sq.SelectBuilder {
	return psql.Select(
		"c.id", "c.tenant_id", "c.supplier_id", "f.name AS supplier_name", "c.order_date",
		"c.expected_delivery_date", "c.delivery_date", "c.invoice_number", "c.total_value",
		"c.status", "c.notes", "c.created_at", "c.updated_at",
	).From("compras c").Join("fornecedores f ON f.id = c.supplier_id")
}

// Create inserta la cabecera y asigna ID.
func (r *CompraRepository) Create(ctx context.Context, c *entity.Compra) error {
	query := `
		INSERT INTO compras (tenant_id, supplier_id, order_date, expected_delivery_date, delivery_date,
			invoice_number, total_value, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.TenantID, c.SupplierID, c.OrderDate, c.ExpectedDeliveryDate, c.DeliveryDate,
		c.InvoiceNumber, c.TotalValue, c.Status, c.Notes, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return wrapWrite("insert compra", err)
	}
	return nil
}

// GetByID obtiene la cabecera con el nombre del proveedor; (nil, nil) si no existe.
func (r *CompraRepository) GetByID(ctx context.Context, tenantID, id int64) (*entity.Compra, error) {
	return getOne[entity.Compra](ctx, r.q, "get compra",
		selectCompras().Where(sq.Eq{"c.tenant_id": tenantID, "c.id": id}))
}

// GetForUpdate bloquea la fila de la compra.
func (r *CompraRepository) GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Compra, error) {
	return getOne[entity.Compra](ctx, r.q, "get compra for update",
		selectCompras().Where(sq.Eq{"c.tenant_id": tenantID, "c.id": id}).Suffix("FOR UPDATE OF c"))
}

// Update persiste la cabecera.
func (r *CompraRepository) Update(ctx context.Context, c *entity.Compra) error {
	_, err := exec(ctx, r.q, "update compra", psql.Update("compras").
		Set("supplier_id", c.SupplierID).
		Set("order_date", c.OrderDate).
		Set("expected_delivery_date", c.ExpectedDeliveryDate).
		Set("delivery_date", c.DeliveryDate).
		Set("invoice_number", c.InvoiceNumber).
		Set("total_value", c.TotalValue).
		Set("status", c.Status).
		Set("notes", c.Notes).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"tenant_id": c.TenantID, "id": c.ID}))
	return err
}

// List lista compras del tenant (más recientes primero), sin líneas.
func (r *CompraRepository) List(ctx context.Context, tenantID int64, status string, limit, offset int) ([]*entity.Compra, int64, error) {
	where := sq.Eq{"c.tenant_id": tenantID}
	if status != "" {
		where["c.status"] = status
	}
	total, err := count(ctx, r.q, "count compras", psql.Select("COUNT(*)").From("compras c").Where(where))
	if err != nil {
		return nil, 0, err
	}
	list, err := selectAll[entity.Compra](ctx, r.q, "list compras",
		selectCompras().Where(where).OrderBy("c.order_date DESC", "c.id DESC").
			Limit(uint64(limit)).Offset(uint64(offset)))
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Delete elimina la cabecera.
func (r *CompraRepository) Delete(ctx context.Context, tenantID, id int64) error {
	_, err := exec(ctx, r.q, "delete compra", psql.Delete("compras").Where(sq.Eq{"tenant_id": tenantID, "id": id}))
	return err
}

// ListItems líneas de la compra ordenadas por insumo.
func (r *CompraRepository) ListItems(ctx context.Context, compraID int64) ([]*entity.ItemCompra, error) {
	return selectAll[entity.ItemCompra](ctx, r.q, "list itens compra",
		psql.Select("compra_id", "insumo_id", "quantity", "unit_price", "total_price",
			"received_quantity", "pending_quantity", "notes").
			From("itens_compra").Where(sq.Eq{"compra_id": compraID}).OrderBy("insumo_id"))
}

// UpsertItem inserta o actualiza la línea (clave compra_id, insumo_id).
func (r *CompraRepository) UpsertItem(ctx context.Context, it *entity.ItemCompra) error {
	_, err := exec(ctx, r.q, "upsert item compra", psql.Insert("itens_compra").
		Columns("compra_id", "insumo_id", "quantity", "unit_price", "total_price",
			"received_quantity", "pending_quantity", "notes").
		Values(it.CompraID, it.InsumoID, it.Quantity, it.UnitPrice, it.TotalPrice,
			it.ReceivedQuantity, it.PendingQuantity, it.Notes).
		Suffix(`ON CONFLICT (compra_id, insumo_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			total_price = EXCLUDED.total_price,
			received_quantity = EXCLUDED.received_quantity,
			pending_quantity = EXCLUDED.pending_quantity,
			notes = EXCLUDED.notes`))
	return err
}

// DeleteItem elimina una línea.
func (r *CompraRepository) DeleteItem(ctx context.Context, compraID, insumoID int64) error {
	_, err := exec(ctx, r.q, "delete item compra",
		psql.Delete("itens_compra").Where(sq.Eq{"compra_id": compraID, "insumo_id": insumoID}))
	return err
}

// DeleteItems elimina todas las líneas de la compra.
func (r *CompraRepository) DeleteItems(ctx context.Context, compraID int64) error {
	_, err := exec(ctx, r.q, "delete itens compra", psql.Delete("itens_compra").Where(sq.Eq{"compra_id": compraID}))
	return err
}
