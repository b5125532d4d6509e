package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo avisos de stock bajo.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// Create persiste un aviso.
func (r *AlertRepo) Create(ctx context.Context, a *entity.LowStockAlert) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO low_stock_alerts (id, product_id, quantity_at_send, threshold, sent_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.ProductID, a.QuantityAtSend, a.Threshold, a.SentAt,
	)
	if err != nil {
		return fmt.Errorf("create low stock alert: %w", err)
	}
	return nil
}

// ListOpen avisos sin leer, más recientes primero.
func (r *AlertRepo) ListOpen(ctx context.Context, limit int) ([]*entity.LowStockAlert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT a.id, a.product_id, p.name, a.quantity_at_send, a.threshold, a.sent_at
		FROM low_stock_alerts a
		JOIN products p ON p.id = a.product_id
		WHERE NOT a.acknowledged
		ORDER BY a.sent_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.LowStockAlert
	for rows.Next() {
		var a entity.LowStockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.QuantityAtSend, &a.Threshold, &a.SentAt); err != nil {
			return nil, fmt.Errorf("scan low stock alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Acknowledge marca el aviso como leído; false si no existe o ya estaba leído.
func (r *AlertRepo) Acknowledge(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE low_stock_alerts SET acknowledged = true, acknowledged_at = $2, acknowledged_by = $3
		WHERE id = $1 AND NOT acknowledged`, id, at, nullIfEmpty(userID))
	if err != nil {
		return false, fmt.Errorf("acknowledge low stock alert: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
