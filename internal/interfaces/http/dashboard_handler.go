package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/zola-inventory-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los conteos generales del inventario.
// GET /api/dashboard
//
// Respuesta: DashboardResponse (productos, facturas, proveedores, pedidos, pedidos pendientes,
// productos con stock bajo y valor del stock). Se sirve desde caché cuando está disponible.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
