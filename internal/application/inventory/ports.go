package inventory

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products       repository.ProductRepository
	Movements      repository.StockMovementRepository
	Alerts         repository.AlertRepository
	Invoices       repository.InvoiceRepository
	PurchaseOrders repository.PurchaseOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
