package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard y los insights.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetInventorySummary conteos y valor de stock en una sola ida a la BD.
// COALESCE devuelve cero con tablas vacías.
func (r *AnalyticsRepo) GetInventorySummary(ctx context.Context) (repository.InventorySummary, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*)                                       FROM products)                              AS total_products,
	    (SELECT COUNT(*)                                       FROM products WHERE quantity_in_stock < threshold) AS low_stock,
	    (SELECT COUNT(*)                                       FROM suppliers)                             AS total_suppliers,
	    (SELECT COUNT(*)                                       FROM invoices)                              AS total_invoices,
	    (SELECT COUNT(*)                                       FROM purchase_orders)                       AS total_orders,
	    (SELECT COUNT(*)                                       FROM purchase_orders WHERE status = 'pending') AS pending_orders,
	    (SELECT COALESCE(SUM(quantity_in_stock * unit_price), 0) FROM products)                            AS stock_value`

	var s repository.InventorySummary
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalProducts,
		&s.LowStockProducts,
		&s.TotalSuppliers,
		&s.TotalInvoices,
		&s.TotalPurchaseOrders,
		&s.PendingOrders,
		&s.StockValue,
	)
	if err != nil {
		return repository.InventorySummary{}, fmt.Errorf("analytics.GetInventorySummary: %w", err)
	}
	return s, nil
}
