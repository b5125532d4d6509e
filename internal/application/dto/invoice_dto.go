package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewProductInline producto ad hoc creado junto con la factura.
type NewProductInline struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Category  string          `json:"category" validate:"max=100"`
	Unit      string          `json:"unit" validate:"max=20"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
}

// InvoiceItemRequest línea de factura: referencia un producto existente o crea uno nuevo.
type InvoiceItemRequest struct {
	ProductID    string            `json:"product_id" validate:"omitempty,uuid"`
	NewProduct   *NewProductInline `json:"new_product"`
	Quantity     int               `json:"quantity" validate:"required,min=1"`
	PricePerItem decimal.Decimal   `json:"price_per_item" validate:"min=0"`
}

// CreateInvoiceRequest entrada para crear una factura.
type CreateInvoiceRequest struct {
	CustomerName  string               `json:"customer_name" validate:"required,min=1,max=200"`
	PhoneNumber   string               `json:"phone_number" validate:"max=40"`
	SupplierID    string               `json:"supplier_id" validate:"omitempty,uuid"`
	ShippingPrice decimal.Decimal      `json:"shipping_price" validate:"min=0"`
	TaxAmount     decimal.Decimal      `json:"tax_amount" validate:"min=0"`
	Notes         string               `json:"notes" validate:"max=1000"`
	Items         []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	// DeductStock descuenta del stock cada línea con producto (por defecto true).
	DeductStock *bool `json:"deduct_stock"`
}

// UpdateInvoiceRequest edición de datos de cabecera (los importes no se editan).
type UpdateInvoiceRequest struct {
	CustomerName *string `json:"customer_name" validate:"omitempty,min=1,max=200"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=40"`
	Notes        *string `json:"notes" validate:"omitempty,max=1000"`
}

// SendInvoiceEmailRequest envío de la factura en PDF.
type SendInvoiceEmailRequest struct {
	To string `json:"to" validate:"required,email"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id,omitempty"`
	ItemName     string          `json:"item_name"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	CustomerName  string                `json:"customer_name"`
	PhoneNumber   string                `json:"phone_number,omitempty"`
	SupplierID    string                `json:"supplier_id,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	ShippingPrice decimal.Decimal       `json:"shipping_price"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Total         decimal.Decimal       `json:"total"`
	Notes         string                `json:"notes,omitempty"`
	PhotoURL      string                `json:"photo_url,omitempty"`
	CreatedBy     string                `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
