package billing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/apptest"
	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

const (
	flourID  = "11111111-1111-4111-8111-111111111111"
	cheeseID = "22222222-2222-4222-8222-222222222222"
	userID   = "user-1"
)

func newStore(t *testing.T) *apptest.Store {
	t.Helper()
	store := apptest.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: flourID, Name: "Farinha", QuantityInStock: 10, Threshold: 2, UnitPrice: decimal.NewFromInt(5),
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: cheeseID, Name: "Muçarela", QuantityInStock: 1, UnitPrice: decimal.NewFromInt(30),
	}))
	return store
}

func stockOf(t *testing.T, store *apptest.Store, id string) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityInStock
}

func newCreateUC(store *apptest.Store) *billing.CreateInvoiceUseCase {
	return billing.NewCreateInvoiceUseCase(store, store.Products(), store.Suppliers(), nil, nil)
}

func TestCreateInvoice_TotalesYDescuentoDeStock(t *testing.T) {
	store := newStore(t)
	uc := newCreateUC(store)

	out, err := uc.CreateInvoice(context.Background(), userID, dto.CreateInvoiceRequest{
		CustomerName:  "Mesa 4",
		ShippingPrice: decimal.RequireFromString("7.50"),
		TaxAmount:     decimal.RequireFromString("2.50"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: flourID, Quantity: 3, PricePerItem: decimal.RequireFromString("6.00")},
			{ProductID: cheeseID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.InvoiceNumber, "INV-"))
	assert.True(t, decimal.RequireFromString("48").Equal(out.Subtotal), "subtotal %s", out.Subtotal)
	assert.True(t, decimal.RequireFromString("58").Equal(out.Total), "total %s", out.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Farinha", out.Items[0].ItemName)
	assert.True(t, decimal.RequireFromString("18").Equal(out.Items[0].Subtotal))
	// Precio cero toma el precio del producto.
	assert.True(t, decimal.NewFromInt(30).Equal(out.Items[1].PricePerItem))

	assert.Equal(t, 7, stockOf(t, store, flourID))
	assert.Equal(t, 0, stockOf(t, store, cheeseID))
	assert.Equal(t, 2, store.MovementCount())
}

func TestCreateInvoice_StockInsuficienteHaceRollback(t *testing.T) {
	store := newStore(t)
	uc := newCreateUC(store)

	_, err := uc.CreateInvoice(context.Background(), userID, dto.CreateInvoiceRequest{
		CustomerName: "Mesa 1",
		Items: []dto.InvoiceItemRequest{
			{ProductID: flourID, Quantity: 2},
			{ProductID: cheeseID, Quantity: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, stockOf(t, store, flourID))
	assert.Equal(t, 0, store.MovementCount())
	list, err := store.Invoices().List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateInvoice_SinDescontarStock(t *testing.T) {
	store := newStore(t)
	uc := newCreateUC(store)
	no := false

	_, err := uc.CreateInvoice(context.Background(), userID, dto.CreateInvoiceRequest{
		CustomerName: "Evento",
		DeductStock:  &no,
		Items:        []dto.InvoiceItemRequest{{ProductID: cheeseID, Quantity: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stockOf(t, store, cheeseID))
	assert.Equal(t, 0, store.MovementCount())
}

func TestCreateInvoice_ProductoNuevoEnLinea(t *testing.T) {
	store := newStore(t)
	uc := newCreateUC(store)

	out, err := uc.CreateInvoice(context.Background(), userID, dto.CreateInvoiceRequest{
		CustomerName: "Balcão",
		Items: []dto.InvoiceItemRequest{{
			NewProduct: &dto.NewProductInline{Name: "Azeite", Unit: "l", UnitPrice: decimal.NewFromInt(40)},
			Quantity:   2,
		}},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Azeite", out.Items[0].ItemName)
	assert.NotEmpty(t, out.Items[0].ProductID)
	assert.True(t, decimal.NewFromInt(80).Equal(out.Total))

	created, err := store.Products().GetByID(context.Background(), out.Items[0].ProductID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 0, created.QuantityInStock)
}

func TestCreateInvoice_Validaciones(t *testing.T) {
	store := newStore(t)
	uc := newCreateUC(store)
	ctx := context.Background()

	cases := map[string]dto.CreateInvoiceRequest{
		"sin líneas": {CustomerName: "x"},
		"producto y nuevo a la vez": {CustomerName: "x", Items: []dto.InvoiceItemRequest{{
			ProductID: flourID, NewProduct: &dto.NewProductInline{Name: "y"}, Quantity: 1,
		}}},
		"ninguno de los dos": {CustomerName: "x", Items: []dto.InvoiceItemRequest{{Quantity: 1}}},
		"cantidad cero":      {CustomerName: "x", Items: []dto.InvoiceItemRequest{{ProductID: flourID}}},
		"envío negativo": {CustomerName: "x", ShippingPrice: decimal.NewFromInt(-1),
			Items: []dto.InvoiceItemRequest{{ProductID: flourID, Quantity: 1}}},
	}
	for name, in := range cases {
		_, err := uc.CreateInvoice(ctx, userID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}

	_, err := uc.CreateInvoice(ctx, userID, dto.CreateInvoiceRequest{
		CustomerName: "x",
		Items:        []dto.InvoiceItemRequest{{ProductID: "33333333-3333-4333-8333-333333333333", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
