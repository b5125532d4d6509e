package repository

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para pedidos de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera del pedido (SELECT FOR UPDATE) y carga sus líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// List cabeceras con sus líneas; status vacío = todos.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	Delete(ctx context.Context, id string) error
}
