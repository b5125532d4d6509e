package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/zola-inventory-api/internal/domain/inventory"
)

// LedgerInput movimiento a registrar dentro de una transacción abierta.
type LedgerInput struct {
	ProductID string
	Type      string
	Change    int
	Reason    string
	Reference string
	UserID    string
	At        time.Time
}

// LedgerResult fila creada y, si se cruzó el mínimo, el aviso generado.
type LedgerResult struct {
	Movement *entity.StockMovement
	Product  *entity.Product
	Alert    *entity.LowStockAlert
}

// RecordInTx bloquea el producto (SELECT FOR UPDATE), aplica el cambio, guarda la fila del libro
// y actualiza la cantidad del producto usando los repos del caller (misma transacción).
// Si retorna error el caller debe hacer rollback; nada queda escrito.
func RecordInTx(ctx context.Context, repos TxRepos, in LedgerInput) (*LedgerResult, error) {
	if !entity.IsValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	entry, err := domaininv.ApplyDelta(product.QuantityInStock, in.Change)
	if err != nil {
		return nil, err
	}

	if err := repos.Products.UpdateQuantity(ctx, product.ID, entry.After); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		ProductName:    product.Name,
		Type:           in.Type,
		QuantityBefore: entry.Before,
		QuantityChange: entry.Change,
		QuantityAfter:  entry.After,
		Reason:         in.Reason,
		Reference:      in.Reference,
		CreatedBy:      in.UserID,
		CreatedAt:      in.At,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	product.QuantityInStock = entry.After

	res := &LedgerResult{Movement: mov, Product: product}
	if domaininv.CrossedThreshold(entry, product.Threshold) {
		alert := &entity.LowStockAlert{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			ProductName:    product.Name,
			QuantityAtSend: entry.After,
			Threshold:      product.Threshold,
			SentAt:         in.At,
		}
		if err := repos.Alerts.Create(ctx, alert); err != nil {
			return nil, err
		}
		res.Alert = alert
	}
	return res, nil
}
