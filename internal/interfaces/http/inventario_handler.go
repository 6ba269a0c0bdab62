package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// inventarioService lo implementa *estoque.InventarioUseCase.
type inventarioService interface {
	Create(ctx context.Context, tenantID int64, userID *int64, in dto.CreateInventarioRequest) (*dto.InventarioResponse, error)
	AddLine(ctx context.Context, tenantID, id int64, in dto.AddInventarioItemRequest) (*dto.InventarioResponse, error)
	UpdateLines(ctx context.Context, tenantID, id int64, in dto.UpdateInventarioItemsRequest) (*dto.InventarioResponse, error)
	Finalize(ctx context.Context, tenantID int64, userID *int64, id int64) (*dto.FinalizeInventarioResponse, error)
	Cancel(ctx context.Context, tenantID, id int64) (*dto.InventarioResponse, error)
	GetByID(ctx context.Context, tenantID, id int64) (*dto.InventarioResponse, error)
}

// InventarioHandler maneja las sesiones de conteo físico (protegido).
type InventarioHandler struct {
	uc  inventarioService
	log *logger.Logger
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc inventarioService, log *logger.Logger) *InventarioHandler {
	return &InventarioHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Abrir inventario
// @Tags         inventarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInventarioRequest  true  "code, start_date"
// @Success      201   {object}  dto.InventarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventarios [post]
func (h *InventarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventarioRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener inventario con sus líneas
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del inventario"
// @Success      200  {object}  dto.InventarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id} [get]
func (h *InventarioHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	out, err := h.uc.GetByID(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea de conteo
// @Description  Toma el saldo del sistema (del insumo o del lote) en este momento.
// @Tags         inventarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                           true  "ID del inventario"
// @Param        body  body      dto.AddInventarioItemRequest  true  "insumo_id, lote_id, physical_quantity"
// @Success      201   {object}  dto.InventarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/itens [post]
func (h *InventarioHandler) AddLine(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.AddInventarioItemRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddLine(c.UserContext(), GetTenantID(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLines godoc
// @Summary      Registrar conteos
// @Tags         inventarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                               true  "ID del inventario"
// @Param        body  body      dto.UpdateInventarioItemsRequest  true  "conteos por línea"
// @Success      200   {object}  dto.InventarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/itens [put]
func (h *InventarioHandler) UpdateLines(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.UpdateInventarioItemsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateLines(c.UserContext(), GetTenantID(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar inventario
// @Description  Genera un ADJUSTMENT por cada línea cuyo conteo difiere del saldo.
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del inventario"
// @Success      200  {object}  dto.FinalizeInventarioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/finalizar [post]
func (h *InventarioHandler) Finalize(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	out, err := h.uc.Finalize(c.UserContext(), GetTenantID(c), GetUserID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar inventario
// @Tags         inventarios
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del inventario"
// @Success      200  {object}  dto.InventarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventarios/{id}/cancelar [post]
func (h *InventarioHandler) Cancel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	out, err := h.uc.Cancel(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
