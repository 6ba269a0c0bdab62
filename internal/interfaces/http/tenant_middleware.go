package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// tenantChecker es el contrato mínimo para verificar el tenant; lo implementa
// *postgres.TenantRepository.
type tenantChecker interface {
	IsActive(ctx context.Context, tenantID int64) (bool, error)
}

// RequireActiveTenant verifica que el tenant del token exista y esté activo.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si no hay tenant_id en el contexto.
//   - 503 si falla la consulta.
//   - 403 si el tenant está inactivo o no existe.
func RequireActiveTenant(checker tenantChecker, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := GetTenantID(c)
		if tenantID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "tenant_id no encontrado en el token",
			})
		}

		active, err := checker.IsActive(c.UserContext(), tenantID)
		if err != nil {
			log.Error().Err(err).Int64("tenant_id", tenantID).Msg("verificar tenant")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TENANT_CHECK_FAILED",
				Message: "no se pudo verificar el tenant, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "TENANT_INACTIVE",
				Message: "el tenant no está activo",
			})
		}
		return c.Next()
	}
}
