package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "sale"
	MovementTypePurchase   = "purchase"
	MovementTypeAdjustment = "adjustment"
	MovementTypeReturn     = "return"
	MovementTypeWaste      = "waste"
)

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment, MovementTypeReturn, MovementTypeWaste:
		return true
	}
	return false
}

// StockMovement fila inmutable del libro de stock.
// Invariante: QuantityAfter = QuantityBefore + QuantityChange.
type StockMovement struct {
	ID             string
	ProductID      string // vacío si el producto fue eliminado
	ProductName    string // copia del nombre al registrar el movimiento
	Type           string
	QuantityBefore int
	QuantityChange int
	QuantityAfter  int
	Reason         string
	Reference      string // número de factura o pedido que originó el movimiento
	CreatedBy      string
	CreatedAt      time.Time
}
