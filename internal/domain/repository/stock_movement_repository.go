package repository

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de stock (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List más recientes primero; productID vacío = todos los productos.
	List(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
