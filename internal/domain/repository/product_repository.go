package repository

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// ProductFilter filtros de listado.
type ProductFilter struct {
	Category string
	Search   string // coincidencia parcial en el nombre
	LowStock bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE); solo dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza los campos editables. No modifica QuantityInStock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	UpdatePhoto(ctx context.Context, id, photoURL string) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
