package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// QuantityInStock es el stock inicial; después solo cambia vía movimientos.
type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Category        string          `json:"category" validate:"max=100"`
	Unit            string          `json:"unit" validate:"max=20"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"min=0"`
	Threshold       int             `json:"threshold" validate:"min=0"`
	UnitPrice       decimal.Decimal `json:"unit_price" validate:"min=0"`
	VendorName      string          `json:"vendor_name" validate:"max=200"`
	SupplierID      string          `json:"supplier_id" validate:"omitempty,uuid"`
	ExpirationDate  *time.Time      `json:"expiration_date"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category       *string          `json:"category" validate:"omitempty,max=100"`
	Unit           *string          `json:"unit" validate:"omitempty,max=20"`
	Threshold      *int             `json:"threshold" validate:"omitempty,min=0"`
	UnitPrice      *decimal.Decimal `json:"unit_price" validate:"omitempty,min=0"`
	VendorName     *string          `json:"vendor_name" validate:"omitempty,max=200"`
	SupplierID     *string          `json:"supplier_id" validate:"omitempty"`
	ExpirationDate *time.Time       `json:"expiration_date"`

	// ClearExpirationDate quita la fecha de vencimiento; no se combina con expiration_date.
	ClearExpirationDate bool `json:"clear_expiration_date"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Threshold       int             `json:"threshold"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	VendorName      string          `json:"vendor_name"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	ExpirationDate  *time.Time      `json:"expiration_date,omitempty"`
	PhotoURL        string          `json:"photo_url,omitempty"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
