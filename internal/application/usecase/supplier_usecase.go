package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/cnpj"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// SupplierUseCase CRUD de proveedores. El CNPJ se valida y se guarda formateado.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	cache ports.CacheInvalidator
	log   *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, cache ports.CacheInvalidator, log *logger.Logger) *SupplierUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierUseCase{repo: repo, cache: cache, log: log.Named("suppliers")}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	taxID, err := normalizeTaxID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if in.LeadTimeDays < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Contact:      in.Contact,
		TaxID:        taxID,
		LeadTimeDays: in.LeadTimeDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// Update actualización parcial.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Contact != nil {
		s.Contact = *in.Contact
	}
	if in.TaxID != nil {
		taxID, err := normalizeTaxID(*in.TaxID)
		if err != nil {
			return nil, err
		}
		s.TaxID = taxID
	}
	if in.LeadTimeDays != nil {
		if *in.LeadTimeDays < 0 {
			return nil, domain.ErrInvalidInput
		}
		s.LeadTimeDays = *in.LeadTimeDays
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	inventory.InvalidateCache(ctx, uc.cache, uc.log)
	return nil
}

// normalizeTaxID valida un CNPJ no vacío y lo devuelve formateado.
func normalizeTaxID(raw string) (string, error) {
	if cnpj.Normalize(raw) == "" {
		return "", nil
	}
	if !cnpj.Validate(raw) {
		return "", domain.ErrInvalidCNPJ
	}
	return cnpj.Format(raw), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		Email:        s.Email,
		Contact:      s.Contact,
		TaxID:        s.TaxID,
		LeadTimeDays: s.LeadTimeDays,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
