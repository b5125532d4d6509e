package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
)

// movementRecorder recibe un aviso por cada movimiento registrado. Lo implementa *metrics.Metrics.
type movementRecorder interface {
	StockMovementRecorded(movementType string)
}

// StockHandler libro de movimientos de stock y avisos de stock bajo.
type StockHandler struct {
	movements *inventory.RegisterMovementUseCase
	alerts    *inventory.AlertUseCase
	recorder  movementRecorder
}

// NewStockHandler construye el handler. recorder puede ser nil.
func NewStockHandler(movements *inventory.RegisterMovementUseCase, alerts *inventory.AlertUseCase, recorder movementRecorder) *StockHandler {
	return &StockHandler{movements: movements, alerts: alerts, recorder: recorder}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  quantity lleva signo: negativo descuenta. Rechaza dejar el stock por debajo de cero.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.movements.RecordMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	if h.recorder != nil {
		h.recorder.StockMovementRecorded(out.Type)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {object}  dto.StockMovementListResponse
// @Router       /api/stock-movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.movements.List(c.UserContext(), c.Query("product_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportMovements godoc
// @Summary      Exportar movimientos en CSV
// @Tags         stock
// @Security     Bearer
// @Produce      text/csv
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Success      200  {file}  file
// @Router       /api/stock-movements/export [get]
func (h *StockHandler) ExportMovements(c *fiber.Ctx) error {
	data, err := h.movements.ExportCSV(c.UserContext(), c.Query("product_id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendCSV(c, "movimentacoes", data)
}

// ListAlerts godoc
// @Summary      Avisos de stock bajo sin confirmar
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockAlertResponse
// @Router       /api/alerts/low-stock [get]
func (h *StockHandler) ListAlerts(c *fiber.Ctx) error {
	out, err := h.alerts.ListOpen(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AcknowledgeAlert godoc
// @Summary      Confirmar aviso de stock bajo
// @Tags         stock
// @Security     Bearer
// @Param        id   path  string  true  "ID del aviso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock/{id}/ack [post]
func (h *StockHandler) AcknowledgeAlert(c *fiber.Ctx) error {
	if err := h.alerts.Acknowledge(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
