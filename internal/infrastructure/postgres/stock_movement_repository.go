package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de stock: solo inserción y lectura.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, product_name, movement_type, quantity_before, quantity_change,
			quantity_after, reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.ProductID, m.ProductName, m.Type, m.QuantityBefore, m.QuantityChange, m.QuantityAfter,
		m.Reason, m.Reference, nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List movimientos más recientes primero. El nombre es el guardado al registrar el movimiento,
// así que las filas de productos eliminados (product_id NULL) siguen apareciendo.
func (r *StockMovementRepo) List(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.product_id, m.product_name, m.movement_type, m.quantity_before, m.quantity_change,
			m.quantity_after, m.reason, m.reference, m.created_by, m.created_at
		FROM stock_movements m
		WHERE ($1 = '' OR m.product_id::TEXT = $1)
		ORDER BY m.created_at DESC, m.id
		LIMIT $2 OFFSET $3`, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var (
			m         entity.StockMovement
			productID *string
			createdBy *string
		)
		if err := rows.Scan(&m.ID, &productID, &m.ProductName, &m.Type, &m.QuantityBefore, &m.QuantityChange,
			&m.QuantityAfter, &m.Reason, &m.Reference, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.ProductID = deref(productID)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
