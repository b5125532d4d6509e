package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de entrega de un pedido de compra.
const (
	POStatusPending   = "pending"
	POStatusInTransit = "in_transit"
	POStatusDelivered = "delivered"
	POStatusCancelled = "cancelled"
)

var poTransitions = map[string][]string{
	POStatusPending:   {POStatusInTransit, POStatusDelivered, POStatusCancelled},
	POStatusInTransit: {POStatusDelivered, POStatusCancelled},
}

// CanTransitionPO indica si un pedido puede pasar de from a to.
// delivered y cancelled son terminales.
func CanTransitionPO(from, to string) bool {
	for _, s := range poTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsValidPOStatus indica si status es un estado conocido.
func IsValidPOStatus(status string) bool {
	switch status {
	case POStatusPending, POStatusInTransit, POStatusDelivered, POStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder pedido de compra a un proveedor.
type PurchaseOrder struct {
	ID               string
	OrderNumber      string // PO-<ULID>
	SupplierID       string
	SupplierName     string // copia del nombre al momento del pedido
	OrderDate        time.Time
	ExpectedDelivery *time.Time
	TotalValue       decimal.Decimal
	Status           string
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []PurchaseOrderItem
}

// PurchaseOrderItem línea de pedido.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
