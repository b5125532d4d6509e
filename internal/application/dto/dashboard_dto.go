package dto

import "github.com/shopspring/decimal"

// DashboardResponse conteos generales del inventario.
type DashboardResponse struct {
	TotalProducts       int             `json:"total_products"`
	TotalInvoices       int             `json:"total_invoices"`
	TotalSuppliers      int             `json:"total_suppliers"`
	TotalPurchaseOrders int             `json:"total_purchase_orders"`
	PendingOrders       int             `json:"pending_orders"`
	LowStockProducts    int             `json:"low_stock_products"`
	StockValue          decimal.Decimal `json:"stock_value"`
}
