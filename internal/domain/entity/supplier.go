package entity

import "time"

// Supplier proveedor del restaurante.
type Supplier struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Contact      string
	TaxID        string // CNPJ formateado (XX.XXX.XXX/XXXX-XX); vacío si no se informó
	LeadTimeDays int    // plazo de entrega en días
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
