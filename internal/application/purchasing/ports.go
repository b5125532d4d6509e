package purchasing

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// PurchaseOrderPDFGenerator puerto de salida para el PDF del pedido de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(ctx context.Context, order *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}
