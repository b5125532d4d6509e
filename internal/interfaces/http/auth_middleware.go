package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalSession = "session"
	LocalError   = "error"
)

// Session identidad del usuario autenticado, tal como viene en el token.
type Session struct {
	UserID string
	Email  string
	Role   string
}

// statusChecker indica si la cuenta sigue activa en la base de datos.
type statusChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT y deja la Session en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return sessionMiddleware(jwtSecret, nil)
}

// ActiveSessionMiddleware es AuthMiddleware más la comprobación del estado vigente de la cuenta:
// un token emitido antes de desactivar al usuario deja de servir.
func ActiveSessionMiddleware(jwtSecret string, users statusChecker) fiber.Handler {
	return sessionMiddleware(jwtSecret, users)
}

func sessionMiddleware(jwtSecret string, users statusChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		identity, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if users != nil {
			active, err := users.IsActive(c.UserContext(), identity.UserID)
			if err != nil {
				c.Locals(LocalError, err.Error())
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STATUS_CHECK_FAILED", Message: "no se pudo verificar la cuenta"})
			}
			if !active {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_INACTIVE", Message: "cuenta inactiva o pendiente de aprobación"})
			}
		}
		c.Locals(LocalSession, Session{UserID: identity.UserID, Email: identity.Email, Role: identity.Role})
		return c.Next()
	}
}

// RequireRole permite el paso solo si el rol del token está entre allowed.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "rol no encontrado en el token"})
		}
		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetSession devuelve la sesión del contexto; ok=false si AuthMiddleware no corrió.
func GetSession(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(LocalSession).(Session)
	return s, ok
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.UserID
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.Email
}

// GetRole devuelve el rol con el que se emitió el token.
func GetRole(c *fiber.Ctx) string {
	s, _ := GetSession(c)
	return s.Role
}
