package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/estoque-api/internal/application/estoque"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	insumoRepo := postgres.NewInsumoRepository(pool)
	movRepo := postgres.NewMovimentacaoRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	unitRepo := postgres.NewCatalogoRepository(pool)
	supplierRepo := postgres.NewFornecedorRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)

	txRunner := postgres.NewTxRunner(pool, cfg.DB.StatementTimeout)
	recorder := estoque.NewMovementRecorder(txRunner)

	insumoUC := estoque.NewInsumoUseCase(txRunner, recorder, insumoRepo, unitRepo)
	movementUC := estoque.NewMovementUseCase(recorder, movRepo, insumoRepo)
	compraUC := estoque.NewCompraUseCase(txRunner, recorder, compraRepo, insumoRepo, supplierRepo)
	inventarioUC := estoque.NewInventarioUseCase(txRunner, recorder, inventarioRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		InsumoUC:     insumoUC,
		MovementUC:   movementUC,
		CompraUC:     compraUC,
		InventarioUC: inventarioUC,
		Tenants:      tenantRepo,
		DB:           pool,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		Log:          log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
