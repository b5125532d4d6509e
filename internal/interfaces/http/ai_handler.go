package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
)

// insightsRecorder cuenta las peticiones de insights por resultado. Lo implementa *metrics.Metrics.
type insightsRecorder interface {
	InsightsRequested(outcome string)
}

// AIHandler maneja el endpoint de insights de inventario generados por IA.
type AIHandler struct {
	uc       *usecase.AIUseCase
	recorder insightsRecorder
}

// NewAIHandler construye el handler. recorder puede ser nil.
func NewAIHandler(uc *usecase.AIUseCase, recorder insightsRecorder) *AIHandler {
	return &AIHandler{uc: uc, recorder: recorder}
}

// Insights godoc
// @Summary      Insights de inventario con IA
// @Description  Envía un resumen del inventario, pedidos y facturas recientes al modelo configurado
// @Description  y devuelve su análisis en texto libre (portugués).
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InsightsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      408  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ai/insights [post]
func (h *AIHandler) Insights(c *fiber.Ctx) error {
	out, err := h.uc.GenerateInsights(c.UserContext())
	h.record(err)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AIHandler) record(err error) {
	if h.recorder == nil {
		return
	}
	switch {
	case err == nil:
		h.recorder.InsightsRequested("ok")
	case errors.Is(err, ports.ErrLLMNotConfigured):
		h.recorder.InsightsRequested("unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		h.recorder.InsightsRequested("timeout")
	default:
		h.recorder.InsightsRequested("error")
	}
}
