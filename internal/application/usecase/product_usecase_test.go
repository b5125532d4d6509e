package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/usecase"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

func newProductUC(store *apptest.Store, storage *memStorage) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(store, store.Products(), store.Suppliers(), storage, nil, nil)
}

func TestProductCreate_StockInicialQuedaEnElLibro(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()

	out, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "Farinha 00", Unit: "kg", QuantityInStock: 25, Threshold: 5, UnitPrice: decimal.RequireFromString("6.90"),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, out.QuantityInStock)
	assert.False(t, out.LowStock)

	movs, err := store.Movements().List(ctx, out.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 0, movs[0].QuantityBefore)
	assert.Equal(t, 25, movs[0].QuantityAfter)
	assert.Equal(t, "adjustment", movs[0].Type)
}

func TestProductCreate_SinStockNoGeneraMovimiento(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store, nil)

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{Name: "Orégano"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.MovementCount())
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	uc := newProductUC(apptest.NewStore(), nil)
	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Orégano", SupplierID: "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{Name: "Tomate", QuantityInStock: 8, Threshold: 2})
	require.NoError(t, err)

	threshold := 10
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Threshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, 8, out.QuantityInStock)
	assert.True(t, out.LowStock)

	low, err := uc.LowStock(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, created.ID, low.Items[0].ID)
}

func TestProductUpdate_VencimientoSeAsignaYSeQuita(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{Name: "Iogurte"})
	require.NoError(t, err)

	venc := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{ExpirationDate: &venc})
	require.NoError(t, err)
	require.NotNil(t, out.ExpirationDate)

	name := "Iogurte natural"
	out, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	require.NotNil(t, out.ExpirationDate, "sin campo no cambia")

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{ExpirationDate: &venc, ClearExpirationDate: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{ClearExpirationDate: true})
	require.NoError(t, err)
	assert.Nil(t, out.ExpirationDate)
}

func TestProductList_Filtros(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()
	for _, n := range []string{"Queijo prato", "Queijo parmesão", "Cerveja"} {
		cat := "Restaurante"
		if n == "Cerveja" {
			cat = "Bar"
		}
		_, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{Name: n, Category: cat})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, repository.ProductFilter{Search: "queijo"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	out, err = uc.List(ctx, repository.ProductFilter{Category: "Bar"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Cerveja", out.Items[0].Name)
}

func TestProductUploadPhoto(t *testing.T) {
	store := apptest.NewStore()
	storage := newMemStorage()
	uc := newProductUC(store, storage)
	ctx := context.Background()
	created, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{Name: "Manjericão"})
	require.NoError(t, err)

	out, err := uc.UploadPhoto(ctx, created.ID, "foto.PNG", strings.NewReader("png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.PhotoURL, "http://files.test/product-photos/"+created.ID+"/"))
	assert.True(t, strings.HasSuffix(out.PhotoURL, ".png"))
	assert.Len(t, storage.files, 1)

	_, err = uc.UploadPhoto(ctx, created.ID, "planilha.xlsx", strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductExportCSV(t *testing.T) {
	store := apptest.NewStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()
	_, err := uc.Create(ctx, "user-1", dto.CreateProductRequest{
		Name: "Azeite", Unit: "l", QuantityInStock: 3, UnitPrice: decimal.RequireFromString("1234.5"),
	})
	require.NoError(t, err)

	out, err := uc.ExportCSV(ctx)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\r\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "1.234,50")
	assert.Contains(t, lines[1], "3.703,50")
}
