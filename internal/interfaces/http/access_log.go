package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// AccessLog registra una línea por petición: método, ruta, status, latencia y usuario.
// Los 5xx se registran a nivel error con el detalle que dejó writeError.
func AccessLog(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError || (err != nil && status < fiber.StatusBadRequest) {
			ev = log.Error()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP())
		if uid := GetUserID(c); uid != "" {
			ev = ev.Str("user_id", uid)
		}
		if detail, ok := c.Locals(LocalError).(string); ok {
			ev = ev.Str("error", detail)
		} else if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("request")
		return err
	}
}
