package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
)

// openAlertsLimit cantidad de avisos que muestra la campana de notificaciones.
const openAlertsLimit = 10

// AlertUseCase lectura y confirmación de avisos de stock bajo.
type AlertUseCase struct {
	repo repository.AlertRepository
	now  func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo, now: time.Now}
}

// ListOpen avisos sin confirmar, más recientes primero.
func (uc *AlertUseCase) ListOpen(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	list, err := uc.repo.ListOpen(ctx, openAlertsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockAlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAlertResponse(a))
	}
	return out, nil
}

// Acknowledge marca el aviso como leído. ErrNotFound si no existe o ya estaba confirmado.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, id, userID string) error {
	ok, err := uc.repo.Acknowledge(ctx, id, userID, uc.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toAlertResponse(a *entity.LowStockAlert) dto.LowStockAlertResponse {
	return dto.LowStockAlertResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ProductName:    a.ProductName,
		QuantityAtSend: a.QuantityAtSend,
		Threshold:      a.Threshold,
		Acknowledged:   a.Acknowledged,
		AcknowledgedAt: a.AcknowledgedAt,
		SentAt:         a.SentAt,
	}
}
