package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
)

func TestSupplierCreate_FormateaCNPJ(t *testing.T) {
	store := apptest.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), nil, nil)

	out, err := uc.Create(context.Background(), dto.CreateSupplierRequest{
		Name: "Laticínios Serra", Phone: "11 3333-4444", TaxID: "11222333000181", LeadTimeDays: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", out.TaxID)
}

func TestSupplierCreate_CNPJInvalido(t *testing.T) {
	uc := usecase.NewSupplierUseCase(apptest.NewStore().Suppliers(), nil, nil)

	_, err := uc.Create(context.Background(), dto.CreateSupplierRequest{
		Name: "X", Phone: "1", TaxID: "11.222.333/0001-82",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCNPJ)
}

func TestSupplierCreate_SinCNPJ(t *testing.T) {
	uc := usecase.NewSupplierUseCase(apptest.NewStore().Suppliers(), nil, nil)

	out, err := uc.Create(context.Background(), dto.CreateSupplierRequest{Name: "Feira", Phone: "1"})
	require.NoError(t, err)
	assert.Empty(t, out.TaxID)
}

func TestSupplierUpdate(t *testing.T) {
	store := apptest.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers(), nil, nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Feira", Phone: "1"})
	require.NoError(t, err)

	bad := "00000000000000"
	_, err = uc.Update(ctx, created.ID, dto.UpdateSupplierRequest{TaxID: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidCNPJ)

	good := "11.444.777/0001-61"
	days := 7
	out, err := uc.Update(ctx, created.ID, dto.UpdateSupplierRequest{TaxID: &good, LeadTimeDays: &days})
	require.NoError(t, err)
	assert.Equal(t, good, out.TaxID)
	assert.Equal(t, 7, out.LeadTimeDays)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
