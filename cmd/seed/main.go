// seed prepara una base local: aplica migraciones, crea un tenant de demostración con sus
// unidades de medida y un proveedor, e imprime un token de desarrollo para ese tenant.
//
// Uso: go run ./cmd/seed [nombre-del-tenant]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/jwt"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

var units = []string{"kg", "g", "l", "ml", "un", "cx"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Service: "seed"})

	tenantName := "Cozinha Demo"
	if len(os.Args) > 1 {
		tenantName = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Strs("applied", applied).Msg("migraciones al día")

	tenantID, err := seed(ctx, pool, tenantName)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Int64("tenant_id", tenantID).Str("tenant", tenantName).Msg("datos de demostración listos")

	token, err := jwt.Generate(cfg.JWT.Secret, cfg.JWT.Issuer, jwt.Identity{UserID: 1, TenantID: tenantID, Role: jwt.RoleAdmin}, 24*time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("generar token")
	}
	fmt.Println(token)
}

// seed es idempotente: reutiliza el tenant si ya existe uno con ese nombre.
func seed(ctx context.Context, pool *pgxpool.Pool, tenantName string) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var tenantID int64
	err = tx.QueryRow(ctx, `SELECT id FROM tenants WHERE name = $1`, tenantName).Scan(&tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = tx.QueryRow(ctx, `INSERT INTO tenants (name) VALUES ($1) RETURNING id`, tenantName).Scan(&tenantID)
	}
	if err != nil {
		return 0, fmt.Errorf("tenant: %w", err)
	}

	for _, u := range units {
		if _, err := tx.Exec(ctx, `INSERT INTO unidades_medida (symbol) VALUES ($1) ON CONFLICT (symbol) DO NOTHING`, u); err != nil {
			return 0, fmt.Errorf("unidad %s: %w", u, err)
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO fornecedores (tenant_id, name)
		SELECT $1::bigint, $2::varchar WHERE NOT EXISTS (SELECT 1 FROM fornecedores WHERE tenant_id = $1 AND name = $2)`,
		tenantID, "Distribuidora Central"); err != nil {
		return 0, fmt.Errorf("proveedor: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tenantID, nil
}
