package ports

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
)

// CacheInvalidator lo usan los casos de uso de escritura para descartar agregados cacheados.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// DashboardCache caché del resumen del dashboard.
// Get devuelve nil, nil si no hay valor.
type DashboardCache interface {
	CacheInvalidator
	Get(ctx context.Context) (*dto.DashboardResponse, error)
	Set(ctx context.Context, v *dto.DashboardResponse) error
}
