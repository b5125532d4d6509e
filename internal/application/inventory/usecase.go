package inventory

import (
	"context"
	"strconv"
	"time"

	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/application/ports"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/export"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// exportLimit máximo de filas por exportación CSV.
const exportLimit = 10000

// RegisterMovementUseCase registra movimientos manuales de stock de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner  TxRunner
	movements repository.StockMovementRepository
	cache     ports.CacheInvalidator
	log       *logger.Logger
	now       func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso. cache puede ser nil.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	movements repository.StockMovementRepository,
	cache ports.CacheInvalidator,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		cache:     cache,
		log:       log.Named("inventory"),
		now:       time.Now,
	}
}

// RecordMovement aplica el ajuste firmado sobre el producto y devuelve la fila del libro.
// Errores: ErrNotFound (producto), ErrInsufficientStock (stock negativo), ErrInvalidInput (cantidad 0 o tipo).
func (uc *RegisterMovementUseCase) RecordMovement(ctx context.Context, userID string, in dto.RecordMovementRequest) (*dto.StockMovementResponse, error) {
	input := LedgerInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Change:    in.Quantity,
		Reason:    in.Reason,
		UserID:    userID,
		At:        uc.now(),
	}
	var res *LedgerResult
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		res, err = RecordInTx(ctx, repos, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", res.Movement.ProductID).
		Str("type", res.Movement.Type).
		Int("before", res.Movement.QuantityBefore).
		Int("change", res.Movement.QuantityChange).
		Int("after", res.Movement.QuantityAfter).
		Msg("movimiento de stock registrado")
	if res.Alert != nil {
		uc.log.Warn().Str("product_id", res.Alert.ProductID).Int("quantity", res.Alert.QuantityAtSend).
			Int("threshold", res.Alert.Threshold).Msg("stock bajo el mínimo")
	}
	InvalidateCache(ctx, uc.cache, uc.log)
	return ToMovementResponse(res.Movement), nil
}

// List movimientos más recientes primero; productID vacío = todos.
func (uc *RegisterMovementUseCase) List(ctx context.Context, productID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.DefaultPage()
	list, err := uc.movements.List(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ExportCSV exporta el libro de stock (hasta exportLimit filas).
func (uc *RegisterMovementUseCase) ExportCSV(ctx context.Context, productID string) ([]byte, error) {
	list, err := uc.movements.List(ctx, productID, exportLimit, 0)
	if err != nil {
		return nil, err
	}
	tbl := export.Table{Header: []string{
		"data", "produto", "tipo", "antes", "alteração", "depois", "motivo", "referência", "usuário",
	}}
	for _, m := range list {
		tbl.Append(
			m.CreatedAt.Format(time.RFC3339),
			m.ProductName,
			m.Type,
			strconv.Itoa(m.QuantityBefore),
			strconv.Itoa(m.QuantityChange),
			strconv.Itoa(m.QuantityAfter),
			m.Reason,
			m.Reference,
			m.CreatedBy,
		)
	}
	return tbl.CSV()
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Type:           m.Type,
		QuantityBefore: m.QuantityBefore,
		QuantityChange: m.QuantityChange,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Reference:      m.Reference,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// InvalidateCache descarta la caché del dashboard tras una escritura. Un fallo solo se registra.
func InvalidateCache(ctx context.Context, cache ports.CacheInvalidator, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Error().Err(err).Msg("no se pudo invalidar la caché del dashboard")
	}
}
