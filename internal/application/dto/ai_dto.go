package dto

import "github.com/shopspring/decimal"

// InsightsSummary resumen numérico enviado al modelo.
type InsightsSummary struct {
	TotalProducts       int `json:"totalProducts"`
	LowStockProducts    int `json:"lowStockProducts"`
	TotalPurchaseOrders int `json:"totalPurchaseOrders"`
	PendingOrders       int `json:"pendingOrders"`
	TotalInvoices       int `json:"totalInvoices"`
}

// InsightsProduct muestra de producto para el modelo.
type InsightsProduct struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	QuantityInStock int             `json:"quantity_in_stock"`
	Threshold       int             `json:"threshold"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ExpirationDate  string          `json:"expiration_date,omitempty"`
}

// InsightsPurchaseOrder muestra de pedido para el modelo.
type InsightsPurchaseOrder struct {
	OrderNumber  string          `json:"order_number"`
	SupplierName string          `json:"supplier_name"`
	Status       string          `json:"status"`
	TotalValue   decimal.Decimal `json:"total_value"`
	OrderDate    string          `json:"order_date"`
}

// InsightsInvoice muestra de factura para el modelo.
type InsightsInvoice struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     string          `json:"created_at"`
}

// InsightsContext datos de inventario que se envían al LLM.
type InsightsContext struct {
	Summary        InsightsSummary         `json:"summary"`
	Products       []InsightsProduct       `json:"products"`
	PurchaseOrders []InsightsPurchaseOrder `json:"purchaseOrders"`
	Invoices       []InsightsInvoice       `json:"invoices"`
}

// InsightsResponse texto libre devuelto por el modelo.
type InsightsResponse struct {
	Insights string `json:"insights"`
}
