package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepository)(nil)

// LoteRepository saldos por lote.
type LoteRepository struct {
	q Querier
}

func NewLoteRepository(q Querier) *LoteRepository {
	return &LoteRepository{q: q}
}

func selectLotes() sq.SelectBuilder {
	return psql.Select("id", "tenant_id", "insumo_id", "code", "quantity", "expires_at").From("lotes")
}

func (r *LoteRepository) GetByID(ctx context.Context, tenantID, id int64) (*entity.Lote, error) {
	return getOne[entity.Lote](ctx, r.q, "get lote", selectLotes().Where(sq.Eq{"tenant_id": tenantID, "id": id}))
}

func (r *LoteRepository) GetForUpdate(ctx context.Context, tenantID, id int64) (*entity.Lote, error) {
	return getOne[entity.Lote](ctx, r.q, "get lote for update",
		selectLotes().Where(sq.Eq{"tenant_id": tenantID, "id": id}).Suffix("FOR UPDATE"))
}

func (r *LoteRepository) UpdateQuantity(ctx context.Context, tenantID, id int64, quantity decimal.Decimal) error {
	_, err := exec(ctx, r.q, "update lote quantity",
		psql.Update("lotes").Set("quantity", quantity).Where(sq.Eq{"tenant_id": tenantID, "id": id}))
	return err
}
