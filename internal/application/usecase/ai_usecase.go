package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

// Tamaño de las muestras enviadas al modelo.
const (
	insightsProducts = 20
	insightsOrders   = 10
	insightsInvoices = 10
)

// AIUseCase orquesta el análisis de inventario asistido por IA.
// Aplica un timeout en cada llamada al LLM para evitar que las latencias
// externas bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm         ports.LLMService
	analytics   repository.AnalyticsRepository
	products    repository.ProductRepository
	orders      repository.PurchaseOrderRepository
	invoices    repository.InvoiceRepository
	callTimeout time.Duration
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(
	llm ports.LLMService,
	analytics repository.AnalyticsRepository,
	products repository.ProductRepository,
	orders repository.PurchaseOrderRepository,
	invoices repository.InvoiceRepository,
	callTimeout time.Duration,
) *AIUseCase {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &AIUseCase{
		llm:         llm,
		analytics:   analytics,
		products:    products,
		orders:      orders,
		invoices:    invoices,
		callTimeout: callTimeout,
	}
}

// GenerateInsights arma el contexto de inventario y delega al servicio de LLM.
func (uc *AIUseCase) GenerateInsights(ctx context.Context) (*dto.InsightsResponse, error) {
	data, err := uc.BuildContext(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.callTimeout)
	defer cancel()

	text, err := uc.llm.GenerateInventoryInsights(ctx, *data)
	if err != nil {
		return nil, fmt.Errorf("insights IA: %w", err)
	}
	return &dto.InsightsResponse{Insights: text}, nil
}

// BuildContext reúne el resumen y las muestras recientes de productos, pedidos y facturas.
func (uc *AIUseCase) BuildContext(ctx context.Context) (*dto.InsightsContext, error) {
	summary, err := uc.analytics.GetInventorySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("insights: resumen: %w", err)
	}
	products, err := uc.products.List(ctx, repository.ProductFilter{}, insightsProducts, 0)
	if err != nil {
		return nil, fmt.Errorf("insights: productos: %w", err)
	}
	orders, err := uc.orders.List(ctx, "", insightsOrders, 0)
	if err != nil {
		return nil, fmt.Errorf("insights: pedidos: %w", err)
	}
	invoices, err := uc.invoices.List(ctx, insightsInvoices, 0)
	if err != nil {
		return nil, fmt.Errorf("insights: facturas: %w", err)
	}

	out := &dto.InsightsContext{
		Summary: dto.InsightsSummary{
			TotalProducts:       summary.TotalProducts,
			LowStockProducts:    summary.LowStockProducts,
			TotalPurchaseOrders: summary.TotalPurchaseOrders,
			PendingOrders:       summary.PendingOrders,
			TotalInvoices:       summary.TotalInvoices,
		},
		Products:       make([]dto.InsightsProduct, 0, len(products)),
		PurchaseOrders: make([]dto.InsightsPurchaseOrder, 0, len(orders)),
		Invoices:       make([]dto.InsightsInvoice, 0, len(invoices)),
	}
	for _, p := range products {
		ip := dto.InsightsProduct{
			Name:            p.Name,
			Category:        p.Category,
			QuantityInStock: p.QuantityInStock,
			Threshold:       p.Threshold,
			UnitPrice:       p.UnitPrice,
		}
		if p.ExpirationDate != nil {
			ip.ExpirationDate = p.ExpirationDate.Format("2006-01-02")
		}
		out.Products = append(out.Products, ip)
	}
	for _, o := range orders {
		out.PurchaseOrders = append(out.PurchaseOrders, dto.InsightsPurchaseOrder{
			OrderNumber:  o.OrderNumber,
			SupplierName: o.SupplierName,
			Status:       o.Status,
			TotalValue:   o.TotalValue,
			OrderDate:    o.OrderDate.Format("2006-01-02"),
		})
	}
	for _, inv := range invoices {
		out.Invoices = append(out.Invoices, dto.InsightsInvoice{
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			Total:         inv.Total,
			CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}
