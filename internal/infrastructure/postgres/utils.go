package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql constructor de consultas con placeholders $1, $2...
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapWrite traduce violaciones de unicidad a domain.ErrDuplicate.
func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// getOne ejecuta la consulta y escanea una fila; (nil, nil) si no hay resultado.
func getOne[T any](ctx context.Context, q Querier, op string, b sq.SelectBuilder) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}
	var dst T
	if err := pgxscan.Get(ctx, q, &dst, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &dst, nil
}

// selectAll ejecuta la consulta y escanea todas las filas.
func selectAll[T any](ctx context.Context, q Querier, op string, b sq.SelectBuilder) ([]*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}
	var dst []*T
	if err := pgxscan.Select(ctx, q, &dst, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return dst, nil
}

// count ejecuta un SELECT COUNT(*) construido con squirrel.
func count(ctx context.Context, q Querier, op string, b sq.SelectBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: build: %w", op, err)
	}
	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// exec ejecuta una sentencia de escritura construida con squirrel.
func exec(ctx context.Context, q Querier, op string, b sq.Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("%s: build: %w", op, err)
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return tag, wrapWrite(op, err)
	}
	return tag, nil
}
