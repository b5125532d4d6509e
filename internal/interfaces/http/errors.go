package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/infrastructure/storage"
)

type errorMapping struct {
	target error
	status int
	code   string
	msg    string // vacío: se usa err.Error()
}

// errorTable traduce errores de dominio y de puertos a respuestas HTTP. El orden importa:
// gana la primera coincidencia con errors.Is.
var errorTable = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrInvalidCNPJ, fiber.StatusBadRequest, "INVALID_CNPJ", ""},
	{domain.ErrInvalidPermission, fiber.StatusBadRequest, "INVALID_PERMISSION", ""},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", ""},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", ""},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", ""},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", ""},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", ""},
	{domain.ErrEmailDomainNotAllowed, fiber.StatusForbidden, "EMAIL_DOMAIN_NOT_ALLOWED", ""},
	{domain.ErrAccountPending, fiber.StatusForbidden, "ACCOUNT_PENDING", ""},
	{domain.ErrAccountInactive, fiber.StatusForbidden, "ACCOUNT_INACTIVE", ""},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", ""},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", ""},
	{ports.ErrLLMNotConfigured, fiber.StatusServiceUnavailable, "AI_UNAVAILABLE", "el servicio de IA no está configurado"},
	{billing.ErrMailerDisabled, fiber.StatusServiceUnavailable, "MAIL_UNAVAILABLE", ""},
	{storage.ErrTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", ""},
	{context.DeadlineExceeded, fiber.StatusRequestTimeout, "TIMEOUT", "el servicio tardó demasiado; intenta de nuevo"},
}

// writeError responde con el status correspondiente al error. Los errores no mapeados
// se devuelven como 500 con el mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			msg := m.msg
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	c.Locals(LocalError, err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
