package billing

import (
	"context"
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

// CreateInvoiceUseCase crea una factura y descuenta el inventario en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     inventory.TxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	cache        ports.CacheInvalidator
	log          *logger.Logger
	now          func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso. cache puede ser nil.
func NewCreateInvoiceUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	cache ports.CacheInvalidator,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		cache:        cache,
		log:          log.Named("billing"),
		now:          time.Now,
	}
}

// CreateInvoice crea la cabecera, los productos ad hoc, las líneas y una salida (sale) del libro
// de stock por cada línea con producto existente. Si algo falla (ej. ErrInsufficientStock) se hace
// rollback y no queda nada escrito.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.ShippingPrice.IsNegative() || in.TaxAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar líneas y productos (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		hasProduct := item.ProductID != ""
		if hasProduct == (item.NewProduct != nil) || item.Quantity <= 0 || item.PricePerItem.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if !hasProduct {
			if item.NewProduct.Name == "" || item.NewProduct.UnitPrice.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			if item.PricePerItem.IsZero() {
				item.PricePerItem = item.NewProduct.UnitPrice
			}
			continue
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[product.ID] = product
		if item.PricePerItem.IsZero() {
			item.PricePerItem = product.UnitPrice
		}
	}

	deduct := true
	if in.DeductStock != nil {
		deduct = *in.DeductStock
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: docnumber.NewAt(docnumber.PrefixInvoice, now),
		CustomerName:  in.CustomerName,
		PhoneNumber:   in.PhoneNumber,
		SupplierID:    in.SupplierID,
		ShippingPrice: in.ShippingPrice,
		TaxAmount:     in.TaxAmount,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		subtotal := decimal.Zero
		inv.Items = make([]entity.InvoiceItem, 0, len(in.Items))
		for _, item := range in.Items {
			productID, name := item.ProductID, ""
			if item.NewProduct != nil {
				np := &entity.Product{
					ID:        uuid.New().String(),
					Name:      item.NewProduct.Name,
					Category:  item.NewProduct.Category,
					Unit:      item.NewProduct.Unit,
					UnitPrice: item.NewProduct.UnitPrice,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := repos.Products.Create(ctx, np); err != nil {
					return err
				}
				productID, name = np.ID, np.Name
			} else {
				name = productsByID[productID].Name
			}

			lineTotal := item.PricePerItem.Mul(decimal.NewFromInt(int64(item.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			inv.Items = append(inv.Items, entity.InvoiceItem{
				ID:           uuid.New().String(),
				InvoiceID:    inv.ID,
				ProductID:    productID,
				ItemName:     name,
				Quantity:     item.Quantity,
				PricePerItem: item.PricePerItem,
				Subtotal:     lineTotal,
			})
		}
		inv.Subtotal = subtotal
		inv.Total = subtotal.Add(inv.ShippingPrice).Add(inv.TaxAmount)

		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}

		if !deduct {
			return nil
		}
		// Solo las líneas con producto existente descuentan stock; los productos ad hoc nacen en cero.
		for _, item := range in.Items {
			if item.ProductID == "" {
				continue
			}
			if _, err := inventory.RecordInTx(ctx, repos, inventory.LedgerInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeSale,
				Change:    -item.Quantity,
				Reason:    "Venda " + inv.InvoiceNumber,
				Reference: inv.InvoiceNumber,
				UserID:    userID,
				At:        now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_number", inv.InvoiceNumber).Str("total", inv.Total.StringFixed(2)).
		Int("items", len(inv.Items)).Bool("deduct_stock", deduct).Msg("factura creada")
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return ToInvoiceResponse(inv), nil
}
