package repository

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas (invoice.Items).
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve la factura con sus líneas.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdatePhoto(ctx context.Context, id, photoURL string) error
	// List devuelve cabeceras (sin líneas), más recientes primero.
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	Delete(ctx context.Context, id string) error
}
