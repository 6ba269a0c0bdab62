package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// compraService lo implementa *estoque.CompraUseCase.
type compraService interface {
	Create(ctx context.Context, tenantID int64, in dto.SaveCompraRequest) (*dto.CompraResponse, error)
	Update(ctx context.Context, tenantID, id int64, in dto.SaveCompraRequest) (*dto.CompraResponse, error)
	Receive(ctx context.Context, tenantID int64, userID *int64, id int64, in dto.ReceiveCompraRequest) (*dto.ReceiveCompraResponse, error)
	Cancel(ctx context.Context, tenantID, id int64) (*dto.CompraResponse, error)
	Delete(ctx context.Context, tenantID, id int64) error
	GetByID(ctx context.Context, tenantID, id int64) (*dto.CompraResponse, error)
	List(ctx context.Context, tenantID int64, status string, page dto.PageRequest) (*dto.CompraListResponse, error)
}

// CompraHandler maneja órdenes de compra y su recepción (protegido).
type CompraHandler struct {
	uc  compraService
	log *logger.Logger
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc compraService, log *logger.Logger) *CompraHandler {
	return &CompraHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear compra
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SaveCompraRequest  true  "proveedor, fechas y líneas"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveCompraRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar compra
// @Description  Las líneas ausentes se eliminan; no se puede quitar una línea con recepciones.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "ID de la compra"
// @Param        body  body      dto.SaveCompraRequest  true  "compra completa"
// @Success      200   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [put]
func (h *CompraHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.SaveCompraRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetTenantID(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir compra
// @Description  received_quantity es ACUMULADO por línea; sólo el incremento entra al stock.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "ID de la compra"
// @Param        body  body      dto.ReceiveCompraRequest  true  "cantidades recibidas acumuladas"
// @Success      200   {object}  dto.ReceiveCompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/receber [post]
func (h *CompraHandler) Receive(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	var in dto.ReceiveCompraRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Receive(c.UserContext(), GetTenantID(c), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la compra"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/cancelar [post]
func (h *CompraHandler) Cancel(c *fiber.Ctx) error {
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

// Delete godoc
// @Summary      Eliminar compra
// @Tags         compras
// @Security     Bearer
// @Param        id   path  int  true  "ID de la compra"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [delete]
func (h *CompraHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), GetTenantID(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener compra con sus líneas
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la compra"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        status  query     string  false  "ABERTA, PARCIAL, FINALIZADA, CANCELADA"
// @Success      200     {object}  dto.CompraListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), c.Query("status"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
