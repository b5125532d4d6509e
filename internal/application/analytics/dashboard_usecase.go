// Package analytics contiene los casos de uso del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// DashboardUseCase genera el resumen del inventario.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// El resultado se guarda en caché (si hay) y los casos de uso de escritura la invalidan.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         ports.DashboardCache
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache ports.DashboardCache, log *logger.Logger) *DashboardUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, log: log.Named("dashboard")}
}

// GetSummary devuelve los conteos y el valor total del stock.
// Un fallo de la caché no rompe la respuesta: se registra y se consulta la base.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché del dashboard no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	sum, err := uc.analyticsRepo.GetInventorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	out := &dto.DashboardResponse{
		TotalProducts:       sum.TotalProducts,
		TotalInvoices:       sum.TotalInvoices,
		TotalSuppliers:      sum.TotalSuppliers,
		TotalPurchaseOrders: sum.TotalPurchaseOrders,
		PendingOrders:       sum.PendingOrders,
		LowStockProducts:    sum.LowStockProducts,
		StockValue:          sum.StockValue.Round(2),
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, out); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el dashboard en caché")
		}
	}
	return out, nil
}
