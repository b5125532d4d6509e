package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

func TestGenerateInvoicePDF(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNumber: "INV-01J0000000000000000000000",
		CustomerName:  "Mesa 7",
		Subtotal:      decimal.RequireFromString("80"),
		ShippingPrice: decimal.RequireFromString("5"),
		TaxAmount:     decimal.Zero,
		Total:         decimal.RequireFromString("85"),
		CreatedAt:     time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC),
		Items: []entity.InvoiceItem{
			{ItemName: "Pizza margherita", Quantity: 2, PricePerItem: decimal.RequireFromString("40"), Subtotal: decimal.RequireFromString("80")},
		},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, &entity.Supplier{Name: "Laticínios"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePurchaseOrderPDF_SinProveedor(t *testing.T) {
	o := &entity.PurchaseOrder{
		OrderNumber:  "PO-01J0000000000000000000000",
		SupplierName: "Feira",
		OrderDate:    time.Now(),
		Status:       entity.POStatusPending,
		TotalValue:   decimal.RequireFromString("30"),
		Items: []entity.PurchaseOrderItem{
			{ProductName: "Tomate", Quantity: 10, UnitPrice: decimal.RequireFromString("3")},
		},
	}

	out, err := NewMarotoPDFGenerator().GeneratePurchaseOrderPDF(context.Background(), o, nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
