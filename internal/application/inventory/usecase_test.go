package inventory_test

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
	"github.com/jhoicas/zola-inventory-api/internal/application/inventory"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

const (
	productID = "8f2c1c3e-1111-4a5b-9c7d-000000000001"
	userID    = "user-1"
)

type countingCache struct{ calls int }

func (c *countingCache) Invalidate(context.Context) error {
	c.calls++
	return nil
}

func seedProduct(t *testing.T, store *apptest.Store, qty, threshold int) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID:              productID,
		Name:            "Muçarela",
		Unit:            "kg",
		QuantityInStock: qty,
		Threshold:       threshold,
		UnitPrice:       decimal.NewFromInt(30),
	}))
}

func quantityOf(t *testing.T, store *apptest.Store) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityInStock
}

func TestRecordMovement_RegistraAntesCambioDespues(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 20, 5)
	cache := &countingCache{}
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), cache, nil)

	mov, err := uc.RecordMovement(context.Background(), userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeWaste, Quantity: -3, Reason: "vencido",
	})
	require.NoError(t, err)

	assert.Equal(t, 20, mov.QuantityBefore)
	assert.Equal(t, -3, mov.QuantityChange)
	assert.Equal(t, 17, mov.QuantityAfter)
	assert.Equal(t, userID, mov.CreatedBy)
	assert.Equal(t, 17, quantityOf(t, store))
	assert.Equal(t, 1, cache.calls)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)

	_, err := uc.RecordMovement(context.Background(), userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeAdjustment, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.MovementCount())
}

func TestRecordMovement_StockNegativoSeRechaza(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 2, 0)
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)

	_, err := uc.RecordMovement(context.Background(), userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeSale, Quantity: -3,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, quantityOf(t, store))
	assert.Equal(t, 0, store.MovementCount())
}

func TestRecordMovement_TipoInvalido(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 2, 0)
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)

	_, err := uc.RecordMovement(context.Background(), userID, dto.RecordMovementRequest{
		ProductID: productID, Type: "transfer", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El stock almacenado es siempre el "después" de la última fila del libro.
func TestRecordMovement_CadenaDeMovimientos(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 10, 0)
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)
	ctx := context.Background()

	for _, delta := range []int{5, -7, 2, -10} {
		_, err := uc.RecordMovement(ctx, userID, dto.RecordMovementRequest{
			ProductID: productID, Type: entity.MovementTypeAdjustment, Quantity: delta,
		})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, productID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	assert.Equal(t, quantityOf(t, store), list.Items[0].QuantityAfter)
	for _, m := range list.Items {
		assert.Equal(t, m.QuantityBefore+m.QuantityChange, m.QuantityAfter)
	}
	assert.Equal(t, 0, list.Items[0].QuantityAfter)
}

func TestRecordMovement_CruceDelMinimoGeneraAviso(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 6, 5)
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeSale, Quantity: -2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.AlertCount())

	// Ya estaba bajo el mínimo: no se repite el aviso.
	_, err = uc.RecordMovement(ctx, userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeSale, Quantity: -1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.AlertCount())
}

func TestExportCSV(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 10, 0)
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)
	_, err := uc.RecordMovement(context.Background(), userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeReturn, Quantity: 4, Reason: "devolução",
	})
	require.NoError(t, err)

	out, err := uc.ExportCSV(context.Background(), "")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\r\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "data,produto,tipo"))
	assert.Contains(t, lines[1], ",return,10,4,14,devolução,")
}

func TestAlerts_ListarYConfirmar(t *testing.T) {
	store := apptest.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Alerts().Create(ctx, &entity.LowStockAlert{
		ID: "a1", ProductID: productID, ProductName: "Muçarela", QuantityAtSend: 1, Threshold: 5, SentAt: time.Now(),
	}))
	uc := inventory.NewAlertUseCase(store.Alerts())

	open, err := uc.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.False(t, open[0].Acknowledged)

	require.NoError(t, uc.Acknowledge(ctx, "a1", userID))
	assert.ErrorIs(t, uc.Acknowledge(ctx, "a1", userID), domain.ErrNotFound)

	open, err = uc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestList_ConservaHistorialDeProductoEliminado(t *testing.T) {
	store := apptest.NewStore()
	seedProduct(t, store, 20, 5)
	uc := inventory.NewRegisterMovementUseCase(store, store.Movements(), nil, nil)
	ctx := context.Background()

	_, err := uc.RecordMovement(ctx, userID, dto.RecordMovementRequest{
		ProductID: productID, Type: entity.MovementTypeSale, Quantity: -2, Reason: "pizza",
	})
	require.NoError(t, err)
	require.NoError(t, store.Products().Delete(ctx, productID))

	out, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "", out.Items[0].ProductID)
	assert.Equal(t, "Muçarela", out.Items[0].ProductName)
	assert.Equal(t, 18, out.Items[0].QuantityAfter)
}
