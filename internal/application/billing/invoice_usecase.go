package billing

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// InvoiceUseCase consultas y ediciones de facturas ya emitidas.
// Los importes y las líneas no se editan: borrar una factura no devuelve stock.
type InvoiceUseCase struct {
	repo    repository.InvoiceRepository
	storage ports.FileStorage
	cache   ports.CacheInvalidator
	log     *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso. storage y cache pueden ser nil.
func NewInvoiceUseCase(repo repository.InvoiceRepository, storage ports.FileStorage, cache ports.CacheInvalidator, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{repo: repo, storage: storage, cache: cache, log: log.Named("billing")}
}

// GetByID devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return ToInvoiceResponse(inv), nil
}

// List facturas más recientes primero (sin líneas).
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update edita los datos del cliente y las notas.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if in.CustomerName != nil {
		inv.CustomerName = *in.CustomerName
	}
	if in.PhoneNumber != nil {
		inv.PhoneNumber = *in.PhoneNumber
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	inv.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Delete elimina la factura y sus líneas (cascade).
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return nil
}

// UploadPhoto guarda la foto del comprobante en el bucket invoice-photos y registra su URL.
func (uc *InvoiceUseCase) UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*dto.InvoiceResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrInvalidInput
	}
	ext, ok := ports.ImageExt(filename)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	url, err := uc.storage.Save(ctx, ports.BucketInvoicePhotos, ports.NewObjectKey(inv.ID, ext), r)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePhoto(ctx, inv.ID, url); err != nil {
		return nil, err
	}
	inv.PhotoURL = url
	return ToInvoiceResponse(inv), nil
}

// ToInvoiceResponse convierte la entidad al DTO de salida.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		PhoneNumber:   inv.PhoneNumber,
		SupplierID:    inv.SupplierID,
		Subtotal:      inv.Subtotal,
		ShippingPrice: inv.ShippingPrice,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		Notes:         inv.Notes,
		PhotoURL:      inv.PhotoURL,
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ItemName:     it.ItemName,
			Quantity:     it.Quantity,
			PricePerItem: it.PricePerItem,
			Subtotal:     it.Subtotal,
		})
	}
	return out
}
