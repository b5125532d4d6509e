package usecase

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/export"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
	"github.com/jhoicas/zola-inventory-api/pkg/money"
)

const productExportLimit = 10000

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
	storage      ports.FileStorage
	cache        ports.CacheInvalidator
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso. storage y cache pueden ser nil.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	repo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	storage ports.FileStorage,
	cache ports.CacheInvalidator,
	log *logger.Logger,
) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		txRunner:     txRunner,
		repo:         repo,
		supplierRepo: supplierRepo,
		storage:      storage,
		cache:        cache,
		log:          log.Named("products"),
	}
}

// Create crea un producto. Si trae stock inicial, se registra como ajuste de apertura
// (antes 0) en la misma transacción, de modo que el libro explique todo el stock.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.QuantityInStock < 0 || in.Threshold < 0 || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Category:       in.Category,
		Unit:           in.Unit,
		Threshold:      in.Threshold,
		UnitPrice:      in.UnitPrice,
		VendorName:     in.VendorName,
		SupplierID:     in.SupplierID,
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.QuantityInStock == 0 {
			return nil
		}
		res, err := inventory.RecordInTx(ctx, repos, inventory.LedgerInput{
			ProductID: product.ID,
			Type:      entity.MovementTypeAdjustment,
			Change:    in.QuantityInStock,
			Reason:    "Estoque inicial",
			UserID:    userID,
			At:        now,
		})
		if err != nil {
			return err
		}
		product.QuantityInStock = res.Product.QuantityInStock
		return nil
	})
	if err != nil {
		return nil, err
	}
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Threshold != nil {
		if *in.Threshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Threshold = *in.Threshold
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.VendorName != nil {
		product.VendorName = *in.VendorName
	}
	if in.SupplierID != nil {
		if err := uc.checkSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = *in.SupplierID
	}
	switch {
	case in.ClearExpirationDate && in.ExpirationDate != nil:
		return nil, domain.ErrInvalidInput
	case in.ClearExpirationDate:
		product.ExpirationDate = nil
	case in.ExpirationDate != nil:
		product.ExpirationDate = in.ExpirationDate
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// LowStock productos con stock por debajo del mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	return uc.List(ctx, repository.ProductFilter{LowStock: true}, page)
}

// Delete elimina un producto por ID. Su historial de movimientos se elimina en cascada.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return nil
}

// UploadPhoto guarda la foto en el bucket product-photos y registra su URL.
func (uc *ProductUseCase) UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*dto.ProductResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrInvalidInput
	}
	ext, ok := ports.ImageExt(filename)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	url, err := uc.storage.Save(ctx, ports.BucketProductPhotos, ports.NewObjectKey(product.ID, ext), r)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdatePhoto(ctx, product.ID, url); err != nil {
		return nil, err
	}
	product.PhotoURL = url
	return toProductResponse(product), nil
}

// ExportCSV exporta el catálogo con importes en BRL.
func (uc *ProductUseCase) ExportCSV(ctx context.Context) ([]byte, error) {
	list, err := uc.repo.List(ctx, repository.ProductFilter{}, productExportLimit, 0)
	if err != nil {
		return nil, err
	}
	tbl := export.Table{Header: []string{
		"nome", "categoria", "unidade", "estoque", "mínimo", "preço unitário", "valor em estoque", "fornecedor", "validade",
	}}
	for _, p := range list {
		expiration := ""
		if p.ExpirationDate != nil {
			expiration = p.ExpirationDate.Format("2006-01-02")
		}
		tbl.Append(
			p.Name,
			p.Category,
			p.Unit,
			strconv.Itoa(p.QuantityInStock),
			strconv.Itoa(p.Threshold),
			money.FormatBRL(p.UnitPrice),
			money.FormatBRL(p.StockValue()),
			p.VendorName,
			expiration,
		)
	}
	return tbl.CSV()
}

func (uc *ProductUseCase) checkSupplier(ctx context.Context, supplierID string) error {
	if supplierID == "" {
		return nil
	}
	sup, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Unit:            p.Unit,
		QuantityInStock: p.QuantityInStock,
		Threshold:       p.Threshold,
		UnitPrice:       p.UnitPrice,
		VendorName:      p.VendorName,
		SupplierID:      p.SupplierID,
		ExpirationDate:  p.ExpirationDate,
		PhotoURL:        p.PhotoURL,
		LowStock:        p.IsLowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
