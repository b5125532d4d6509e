package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura.
// Total = Subtotal + ShippingPrice + TaxAmount.
type Invoice struct {
	ID            string
	InvoiceNumber string // INV-<ULID>
	CustomerName  string
	PhoneNumber   string
	SupplierID    string
	Subtotal      decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	PhotoURL      string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []InvoiceItem
}

// InvoiceItem línea de factura. ItemName se copia del producto al facturar.
type InvoiceItem struct {
	ID           string
	InvoiceID    string
	ProductID    string
	ItemName     string
	Quantity     int
	PricePerItem decimal.Decimal
	Subtotal     decimal.Decimal
}
