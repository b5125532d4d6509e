// Package purchasing contiene los casos de uso de pedidos de compra a proveedores:
// alta, seguimiento de entrega y recepción de mercadería en el libro de stock.
package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/docnumber"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// PurchaseOrderUseCase CRUD de pedidos y máquina de estados de entrega.
type PurchaseOrderUseCase struct {
	txRunner     inventory.TxRunner
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	pdf          PurchaseOrderPDFGenerator
	cache        ports.CacheInvalidator
	log          *logger.Logger
	now          func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso. pdf y cache pueden ser nil.
func NewPurchaseOrderUseCase(
	txRunner inventory.TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	pdf PurchaseOrderPDFGenerator,
	cache ports.CacheInvalidator,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		pdf:          pdf,
		cache:        cache,
		log:          log.Named("purchasing"),
		now:          time.Now,
	}
}

// Create registra un pedido en estado pending con número PO-<ULID> y copia del nombre del proveedor.
// Acepta Items o la forma de una sola línea (ProductID + Quantity + TotalValue).
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	lines := in.Items
	if len(lines) == 0 {
		if in.ProductID == "" || in.Quantity <= 0 || in.TotalValue.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lines = []dto.PurchaseOrderItemRequest{{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: in.TotalValue.Div(decimal.NewFromInt(int64(in.Quantity))).Round(2),
		}}
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	order := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		OrderNumber:      docnumber.NewAt(docnumber.PrefixPurchaseOrder, now),
		SupplierID:       supplier.ID,
		SupplierName:     supplier.Name,
		OrderDate:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		ExpectedDelivery: in.ExpectedDelivery,
		Status:           entity.POStatusPending,
		Notes:            in.Notes,
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		item := entity.PurchaseOrderItem{
			ID:              uuid.New().String(),
			PurchaseOrderID: order.ID,
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		}
		total = total.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}
	// En la forma de una línea el total informado manda (evita diferencias de redondeo).
	if len(in.Items) == 0 {
		total = in.TotalValue
	}
	order.TotalValue = total

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_number", order.OrderNumber).Str("supplier", supplier.Name).
		Str("total", total.StringFixed(2)).Msg("pedido de compra creado")
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return ToPurchaseOrderResponse(order), nil
}

// GetByID devuelve el pedido con sus líneas.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return ToPurchaseOrderResponse(order), nil
}

// List pedidos más recientes primero; status vacío = todos.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	if status != "" && !entity.IsValidPOStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orderRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToPurchaseOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus aplica la transición de estado. Pasar a delivered registra una entrada
// (purchase) en el libro de stock por cada línea, en la misma transacción. Las líneas cuyo
// producto ya no existe se omiten.
//
// Errores: ErrNotFound, ErrInvalidInput (estado desconocido), ErrInvalidTransition.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, userID, id, status string) (*dto.PurchaseOrderResponse, error) {
	if !entity.IsValidPOStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		order, err = repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransitionPO(order.Status, status) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, order.Status, status)
		}
		if err := repos.PurchaseOrders.UpdateStatus(ctx, order.ID, status); err != nil {
			return err
		}
		if status == entity.POStatusDelivered {
			for _, item := range order.Items {
				// Línea cuyo producto fue eliminado (product_id quedó en NULL): no hay stock que ingresar.
				if item.ProductID == "" {
					uc.log.Warn().Str("order_number", order.OrderNumber).Str("product_name", item.ProductName).
						Msg("línea sin producto omitida en la recepción")
					continue
				}
				_, err := inventory.RecordInTx(ctx, repos, inventory.LedgerInput{
					ProductID: item.ProductID,
					Type:      entity.MovementTypePurchase,
					Change:    item.Quantity,
					Reason:    "Recebimento " + order.OrderNumber,
					Reference: order.OrderNumber,
					UserID:    userID,
					At:        now,
				})
				if errors.Is(err, domain.ErrNotFound) {
					uc.log.Warn().Str("order_number", order.OrderNumber).Str("product_id", item.ProductID).
						Msg("producto inexistente omitido en la recepción")
					continue
				}
				if err != nil {
					return err
				}
			}
		}
		order.Status = status
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_number", order.OrderNumber).Str("status", status).Msg("estado de pedido actualizado")
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return ToPurchaseOrderResponse(order), nil
}

// Delete elimina el pedido. Un pedido entregado ya movió stock y no se puede eliminar (ErrConflict).
func (uc *PurchaseOrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.POStatusDelivered {
		return domain.ErrConflict
	}
	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return nil
}

// DownloadPDF genera el PDF del pedido.
func (uc *PurchaseOrderUseCase) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.GeneratePurchaseOrderPDF(ctx, order, supplier)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", order.OrderNumber), nil
}

// ToPurchaseOrderResponse convierte la entidad al DTO de salida.
func ToPurchaseOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if o == nil {
		return nil
	}
	out := &dto.PurchaseOrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		SupplierID:       o.SupplierID,
		SupplierName:     o.SupplierName,
		OrderDate:        o.OrderDate,
		ExpectedDelivery: o.ExpectedDelivery,
		TotalValue:       o.TotalValue,
		Status:           o.Status,
		Notes:            o.Notes,
		CreatedBy:        o.CreatedBy,
		CreatedAt:        o.CreatedAt,
		Items:            make([]dto.PurchaseOrderItemResponse, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}
