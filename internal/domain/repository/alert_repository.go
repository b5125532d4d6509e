package repository

import (
	"context"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// AlertRepository avisos de stock bajo.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.LowStockAlert) error
	ListOpen(ctx context.Context, limit int) ([]*entity.LowStockAlert, error)
	// Acknowledge marca el aviso como leído; devuelve false si no existe o ya estaba leído.
	Acknowledge(ctx context.Context, id, userID string, at time.Time) (bool, error)
}
