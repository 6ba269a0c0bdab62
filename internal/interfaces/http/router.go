package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/jwt"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// pinger lo implementa *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InsumoUC     insumoService
	MovementUC   movementService
	CompraUC     compraService
	InventarioUC inventarioService
	Tenants      tenantChecker
	DB           pinger
	JWTSecret    string
	JWTIssuer    string
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log.Component("http")))

	// Health (público)
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.DB != nil {
			if err := deps.DB.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: "base de datos no disponible"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas: Bearer Token + tenant activo
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireActiveTenant(deps.Tenants, deps.Log))
	write := RequireRole(jwt.RoleAdmin, jwt.RoleEstoquista)

	insumos := api.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoUC, deps.Log)
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Log)
	insumos.Post("/", write, insumoHandler.Create)
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Put("/:id", write, insumoHandler.Update)
	insumos.Delete("/:id", write, insumoHandler.Delete)
	insumos.Get("/:id/ledger-balance", movementHandler.LedgerBalance)

	// Libro de movimientos
	movs := api.Group("/movimentacoes")
	movs.Post("/", write, movementHandler.Register)
	movs.Get("/", movementHandler.List)
	movs.Get("/:id", movementHandler.GetByID)

	// Compras y recepción
	compras := api.Group("/compras")
	compraHandler := NewCompraHandler(deps.CompraUC, deps.Log)
	compras.Post("/", write, compraHandler.Create)
	compras.Get("/", compraHandler.List)
	compras.Get("/:id", compraHandler.GetByID)
	compras.Put("/:id", write, compraHandler.Update)
	compras.Delete("/:id", write, compraHandler.Delete)
	compras.Post("/:id/receber", write, compraHandler.Receive)
	compras.Post("/:id/cancelar", write, compraHandler.Cancel)

	// Inventario físico
	inventarios := api.Group("/inventarios")
	inventarioHandler := NewInventarioHandler(deps.InventarioUC, deps.Log)
	inventarios.Post("/", write, inventarioHandler.Create)
	inventarios.Get("/:id", inventarioHandler.GetByID)
	inventarios.Post("/:id/itens", write, inventarioHandler.AddLine)
	inventarios.Put("/:id/itens", write, inventarioHandler.UpdateLines)
	inventarios.Post("/:id/finalizar", write, inventarioHandler.Finalize)
	inventarios.Post("/:id/cancelar", write, inventarioHandler.Cancel)
}
