package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de pedido.
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// CreatePurchaseOrderRequest entrada para crear un pedido de compra.
// Acepta Items, o la forma de una sola línea (ProductID + Quantity + TotalValue)
// donde el precio unitario es TotalValue / Quantity.
type CreatePurchaseOrderRequest struct {
	SupplierID       string                     `json:"supplier_id" validate:"required,uuid"`
	ExpectedDelivery *time.Time                 `json:"expected_delivery"`
	Notes            string                     `json:"notes" validate:"max=1000"`
	Items            []PurchaseOrderItemRequest `json:"items" validate:"omitempty,dive"`
	ProductID        string                     `json:"product_id" validate:"omitempty,uuid"`
	Quantity         int                        `json:"quantity" validate:"omitempty,min=1"`
	TotalValue       decimal.Decimal            `json:"total_value" validate:"min=0"`
}

// UpdatePurchaseOrderStatusRequest cambio de estado de entrega.
type UpdatePurchaseOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_transit delivered cancelled"`
}

// PurchaseOrderItemResponse línea de pedido.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse salida de un pedido.
type PurchaseOrderResponse struct {
	ID               string                      `json:"id"`
	OrderNumber      string                      `json:"order_number"`
	SupplierID       string                      `json:"supplier_id"`
	SupplierName     string                      `json:"supplier_name"`
	OrderDate        time.Time                   `json:"order_date"`
	ExpectedDelivery *time.Time                  `json:"expected_delivery,omitempty"`
	TotalValue       decimal.Decimal             `json:"total_value"`
	Status           string                      `json:"status"`
	Notes            string                      `json:"notes,omitempty"`
	CreatedBy        string                      `json:"created_by"`
	CreatedAt        time.Time                   `json:"created_at"`
	Items            []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderListResponse lista paginada de pedidos.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
