package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventorySummary conteos agregados para dashboard e insights.
type InventorySummary struct {
	TotalProducts       int
	LowStockProducts    int
	TotalSuppliers      int
	TotalInvoices       int
	TotalPurchaseOrders int
	PendingOrders       int
	StockValue          decimal.Decimal // Σ quantity_in_stock × unit_price
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	// GetInventorySummary usa COALESCE para devolver cero con tablas vacías.
	GetInventorySummary(ctx context.Context) (InventorySummary, error)
}
