package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepository)(nil)

var movimentacaoColumns = []string{
	"id", "tenant_id", "insumo_id", "lote_id", "type", "quantity", "balance_before", "balance_after",
	"unit_cost", "transaction_id::text AS transaction_id", "source_id", "source_type", "note",
	"responsible_id", "created_at",
}

// MovimentacaoRepository libro de movimientos en PostgreSQL (solo INSERT y SELECT).
type MovimentacaoRepository struct {
	q Querier
}

// NewMovimentacaoRepository construye el repositorio sobre un pool o una tx.
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepository {
	return &MovimentacaoRepository{q: q}
}

// Append inserta la entrada y asigna ID.
func (r *MovimentacaoRepository) Append(ctx context.Context, m *entity.Movimentacao) error {
	txID, err := uuid.Parse(m.TransactionID)
	if err != nil {
		return fmt.Errorf("insert movimentacao: transaction_id inválido: %w", err)
	}
	query, args, err := psql.Insert("movimentacoes").
		Columns("tenant_id", "insumo_id", "lote_id", "type", "quantity", "balance_before", "balance_after",
			"unit_cost", "transaction_id", "source_id", "source_type", "note", "responsible_id", "created_at").
		Values(m.TenantID, m.InsumoID, m.LoteID, m.Type, m.Quantity, m.BalanceBefore, m.BalanceAfter,
			m.UnitCost, txID, m.SourceID, m.SourceType, m.Note, m.ResponsibleID, m.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return wrapWrite("build insert movimentacao", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&m.ID); err != nil {
		return wrapWrite("insert movimentacao", err)
	}
	return nil
}

// GetByID obtiene una entrada del tenant; (nil, nil) si no existe.
func (r *MovimentacaoRepository) GetByID(ctx context.Context, tenantID, id int64) (*entity.Movimentacao, error) {
	return getOne[entity.Movimentacao](ctx, r.q, "get movimentacao",
		psql.Select(movimentacaoColumns...).From("movimentacoes").Where(sq.Eq{"tenant_id": tenantID, "id": id}))
}

// List lista el libro filtrado (más reciente primero) con el total y los conteos por tipo.
func (r *MovimentacaoRepository) List(ctx context.Context, tenantID int64, f entity.MovementFilter, limit, offset int) ([]*entity.Movimentacao, entity.MovementTotals, error) {
	where := movementFilter(tenantID, f)

	totals, err := getOne[entity.MovementTotals](ctx, r.q, "movimentacao totals", movementTotalsQuery(where))
	if err != nil {
		return nil, entity.MovementTotals{}, err
	}
	list, err := selectAll[entity.Movimentacao](ctx, r.q, "list movimentacoes",
		psql.Select(movimentacaoColumns...).From("movimentacoes").Where(where).
			OrderBy("created_at DESC", "id DESC").
			Limit(uint64(limit)).Offset(uint64(offset)))
	if err != nil {
		return nil, entity.MovementTotals{}, err
	}
	if totals == nil {
		totals = &entity.MovementTotals{}
	}
	return list, *totals, nil
}

// ListByInsumo devuelve todas las entradas del insumo en orden cronológico.
func (r *MovimentacaoRepository) ListByInsumo(ctx context.Context, tenantID, insumoID int64) ([]*entity.Movimentacao, error) {
	return selectAll[entity.Movimentacao](ctx, r.q, "list movimentacoes by insumo",
		psql.Select(movimentacaoColumns...).From("movimentacoes").
			Where(sq.Eq{"tenant_id": tenantID, "insumo_id": insumoID}).
			OrderBy("created_at", "id"))
}

func movementFilter(tenantID int64, f entity.MovementFilter) sq.And {
	where := sq.And{sq.Eq{"tenant_id": tenantID}}
	if f.InsumoID != nil {
		where = append(where, sq.Eq{"insumo_id": *f.InsumoID})
	}
	if f.Type != "" {
		where = append(where, sq.Eq{"type": f.Type})
	}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"created_at": *f.To})
	}
	return where
}

func movementTotalsQuery(where sq.Sqlizer) sq.SelectBuilder {
	return psql.Select(
		"COUNT(*) AS total",
		"COUNT(*) FILTER (WHERE type = 'IN') AS incoming",
		"COUNT(*) FILTER (WHERE type IN ('OUT', 'PRODUCTION', 'DISCARD')) AS outgoing",
		"COUNT(*) FILTER (WHERE type = 'ADJUSTMENT') AS adjustments",
	).From("movimentacoes").Where(where)
}
