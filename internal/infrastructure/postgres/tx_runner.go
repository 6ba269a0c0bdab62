package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/estoque-api/internal/application/estoque"
)

var tracer = otel.Tracer("estoque-api/tx")

var _ estoque.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
type TxRunner struct {
	pool             *pgxpool.Pool
	statementTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. statementTimeout <= 0 no aplica límite.
func NewTxRunner(pool *pgxpool.Pool, statementTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, statementTimeout: statementTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos estoque.TxRepos) error) (err error) {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.isolation", string(pgx.ReadCommitted))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.statementTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", r.statementTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set statement_timeout: %w", err)
		}
	}

	if err := fn(NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTxRepos construye los repositorios sobre q (pool o tx).
func NewTxRepos(q Querier) estoque.TxRepos {
	return estoque.TxRepos{
		Insumos:       NewInsumoRepository(q),
		Movimentacoes: NewMovimentacaoRepository(q),
		Compras:       NewCompraRepository(q),
		Inventarios:   NewInventarioRepository(q),
		Lotes:         NewLoteRepository(q),
	}
}
