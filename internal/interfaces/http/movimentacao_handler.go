package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// movementService lo implementa *estoque.MovementUseCase.
type movementService interface {
	Register(ctx context.Context, tenantID int64, userID *int64, in dto.RegisterMovementRequest) (*dto.MovementResponse, error)
	GetByID(ctx context.Context, tenantID, id int64) (*dto.MovementResponse, error)
	List(ctx context.Context, tenantID int64, q dto.ListMovementsQuery) (*dto.MovementListResponse, error)
	LedgerBalance(ctx context.Context, tenantID, insumoID int64) (*dto.LedgerBalanceResponse, error)
}

// MovementHandler expone el libro de movimientos (protegido).
type MovementHandler struct {
	uc  movementService
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc movementService, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar movimiento manual
// @Description  IN, OUT, PRODUCTION, DISCARD con quantity; ADJUSTMENT con target_quantity.
// @Tags         movimentacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterMovementRequest  true  "insumo_id, type, quantity o target_quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimentacoes [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Register(c.UserContext(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimentacoes/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar movimientos
// @Description  Más recientes primero, con totales de entradas, salidas y ajustes.
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Param        insumo_id  query     int     false  "filtrar por insumo"
// @Param        type       query     string  false  "IN, OUT, PRODUCTION, DISCARD, ADJUSTMENT"
// @Param        from       query     string  false  "desde (RFC3339 o YYYY-MM-DD)"
// @Param        to         query     string  false  "hasta (RFC3339 o YYYY-MM-DD, día completo)"
// @Success      200        {object}  dto.MovementListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/movimentacoes [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page, ok, err := bindPage(c)
	if !ok {
		return err
	}
	q := dto.ListMovementsQuery{Type: c.Query("type"), PageRequest: page}
	if s := c.Query("insumo_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return badParam(c, "insumo_id")
		}
		q.InsumoID = &id
	}
	if s := c.Query("from"); s != "" {
		t, ok := parseQueryTime(s, false)
		if !ok {
			return badParam(c, "from")
		}
		q.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, ok := parseQueryTime(s, true)
		if !ok {
			return badParam(c, "to")
		}
		q.To = &t
	}
	out, err := h.uc.List(c.UserContext(), GetTenantID(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LedgerBalance godoc
// @Summary      Conciliar saldo con el libro
// @Description  Compara la cantidad guardada con la suma de las entradas del libro.
// @Tags         insumos
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del insumo"
// @Success      200  {object}  dto.LedgerBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/ledger-balance [get]
func (h *MovementHandler) LedgerBalance(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badParam(c, "id")
	}
	out, err := h.uc.LedgerBalance(c.UserContext(), GetTenantID(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// parseQueryTime acepta RFC3339 o una fecha YYYY-MM-DD (UTC). Con endOfDay la fecha
// cubre el día completo.
func parseQueryTime(s string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}
