package dto

import "time"

// RecordMovementRequest ajuste manual de stock. Quantity lleva signo (negativo = salida).
type RecordMovementRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=sale purchase adjustment return waste"`
	Quantity  int    `json:"quantity" validate:"required,ne=0"`
	Reason    string `json:"reason" validate:"max=500"`
}

// StockMovementResponse fila del libro de stock.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Type           string    `json:"type"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityChange int       `json:"quantity_change"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// StockMovementListResponse lista paginada.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// LowStockAlertResponse aviso de stock bajo.
type LowStockAlertResponse struct {
	ID             string     `json:"id"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	QuantityAtSend int        `json:"quantity_at_send"`
	Threshold      int        `json:"threshold"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	SentAt         time.Time  `json:"sent_at"`
}
