package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// permissionChecker es el contrato mínimo que necesita el middleware para verificar permisos.
// Lo implementa *access.Service.
type permissionChecker interface {
	Can(ctx context.Context, userID string, p entity.Permission) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica si el usuario del token
// puede ejercer perm. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay user_id en el contexto.
//   - 503 si falla la consulta de permisos.
//   - 403 si el permiso no está concedido (o la cuenta no está activa).
func RequirePermission(perm entity.Permission, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		ok, err := checker.Can(c.UserContext(), userID, perm)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "permiso requerido: " + string(perm),
			})
		}
		return c.Next()
	}
}

// roleChecker consulta el rol vigente en la base. Lo implementa *access.Service.
type roleChecker interface {
	HasRole(ctx context.Context, userID string, roles ...string) (bool, error)
}

// RequireActiveRole como RequireRole, pero contra el rol y estado actuales del usuario en la
// base: un cambio de rol o una desactivación tienen efecto sin esperar a que expire el token.
func RequireActiveRole(checker roleChecker, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}
		ok, err := checker.HasRole(c.UserContext(), userID, roles...)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el rol, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "rol sin acceso a este recurso",
			})
		}
		return c.Next()
	}
}
