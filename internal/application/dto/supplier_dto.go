package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor. TaxID es un CNPJ (con o sin puntuación).
type CreateSupplierRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Phone        string `json:"phone" validate:"required,max=40"`
	Email        string `json:"email" validate:"omitempty,email"`
	Contact      string `json:"contact" validate:"max=200"`
	TaxID        string `json:"tax_id" validate:"max=20"`
	LeadTimeDays int    `json:"lead_time_days" validate:"min=0,max=365"`
}

// UpdateSupplierRequest actualización parcial.
type UpdateSupplierRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone        *string `json:"phone" validate:"omitempty,min=1,max=40"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Contact      *string `json:"contact" validate:"omitempty,max=200"`
	TaxID        *string `json:"tax_id" validate:"omitempty,max=20"`
	LeadTimeDays *int    `json:"lead_time_days" validate:"omitempty,min=0,max=365"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Contact      string    `json:"contact,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	LeadTimeDays int       `json:"lead_time_days"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
