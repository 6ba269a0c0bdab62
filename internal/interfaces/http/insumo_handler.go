package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// insumoService lo implementa *estoque.InsumoUseCase.
type insumoService interface {
	Create(ctx context.Context, tenantID int64, userID *int64, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error)
	GetByID(ctx context.Context, tenantID, id int64) (*dto.InsumoResponse, error)
	Update(ctx context.Context, tenantID, id int64, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error)
	Delete(ctx context.Context, tenantID, id int64) error
	List(ctx context.Context, tenantID int64, belowMinimum bool, page dto.PageRequest) (*dto.InsumoListResponse, error)
}

// InsumoHandler maneja el registro de insumos (protegido).
type InsumoHandler struct {
	uc  insumoService
	log *logger.Logger
}

// NewInsumoHandler construye el handler.
func NewInsumoHandler(uc insumoService, log *logger.Logger) *InsumoHandler {
	return &InsumoHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear insumo
// @Description  opening_quantity > 0 registra una entrada de saldo inicial.
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateInsumoRequest  true  "code, name, unit_id, unit_cost, minimum_quantity, opening_quantity"
// @Success      201   {object}  dto.InsumoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/insumos [post]
func (h *InsumoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInsumoRequest
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
// @Summary      Obtener insumo
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del insumo"
// @Success      200  {object}  dto.InsumoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [get]
func (h *InsumoHandler) GetByID(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Editar insumo
// @Description  Campos administrativos; la cantidad sólo cambia con movimientos.
// @Tags         insumos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "ID del insumo"
// @Param        body  body      dto.UpdateInsumoRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.InsumoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [put]
func (h *InsumoHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.UpdateInsumoRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar insumo
// @Description  Rechazado si el insumo tiene movimientos, compras o fichas técnicas.
// @Tags         insumos
// @Security     Bearer
// @Param        id   path  int  true  "ID del insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [delete]
func (h *InsumoHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar insumos
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        below_minimum  query     bool  false  "sólo insumos bajo el mínimo"
// @Param        limit          query     int   false  "máximo 100"
// @Param        offset         query     int   false  "desplazamiento"
// @Success      200            {object}  dto.InsumoListResponse
// @Router       /api/insumos [get]
func (h *InsumoHandler) List(c *fiber.Ctx) error {
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), c.QueryBool("below_minimum"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
