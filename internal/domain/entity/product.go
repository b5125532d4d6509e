package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo o producto del inventario del restaurante.
// QuantityInStock solo cambia mediante movimientos de stock; el resto de campos por edición directa.
type Product struct {
	ID              string
	Name            string
	Category        string
	Unit            string // unidad de medida: un, kg, l, cx...
	QuantityInStock int
	Threshold       int // stock mínimo; por debajo se considera bajo
	UnitPrice       decimal.Decimal
	VendorName      string
	SupplierID      string // vacío si no está vinculado a un proveedor
	ExpirationDate  *time.Time
	PhotoURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indica si el stock actual está por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.QuantityInStock < p.Threshold
}

// StockValue valor del stock a precio unitario.
func (p *Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.QuantityInStock)))
}
