package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/notify"
	"github.com/jhoicas/Alquileres-api/internal/domain/rental"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// DispatchUseCase compromete inventario hacia un evento ("Stock Out") de forma
// transaccional: verifica disponibilidad en cada pool con bloqueo de fila,
// descuenta todo-o-nada y congela un DispatchRecord con los precios vigentes.
type DispatchUseCase struct {
	txRunner  TxRunner
	eventRepo repository.EventRepository
	notifier  notify.StockNotifier
}

// NewDispatchUseCase construye el caso de uso.
func NewDispatchUseCase(txRunner TxRunner, eventRepo repository.EventRepository, notifier notify.StockNotifier) *DispatchUseCase {
	return &DispatchUseCase{txRunner: txRunner, eventRepo: eventRepo, notifier: notifier}
}

// Dispatch valida y aplica un despacho. Si alguna línea no tiene stock
// suficiente, toda la operación se rechaza con InsufficientStockError
// identificando la línea que falló (rollback).
func (uc *DispatchUseCase) Dispatch(ctx context.Context, userID, eventID string, in dto.DispatchRequest) (*dto.DispatchResponse, error) {
	if eventID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Un producto por despacho: el repliegue de devoluciones casa líneas por
	// product_id, así que dos líneas del mismo producto (incluso primary+b2b)
	// duplicarían cada devolución contra ambas.
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if seen[item.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[item.ProductID] = true
		switch item.Source {
		case entity.SourcePrimary:
		case entity.SourceB2B:
			if item.B2BStockID == "" {
				return nil, domain.ErrInvalidInput
			}
		default:
			return nil, domain.ErrInvalidInput
		}
	}

	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if !rental.CanDispatch(event.State) {
		return nil, domain.ErrEventClosed
	}

	now := time.Now()
	record := &entity.DispatchRecord{
		ID:        uuid.New().String(),
		EventID:   eventID,
		CreatedAt: now,
		CreatedBy: userID,
	}
	var changes []notify.StockChange

	err = uc.txRunner.Run(ctx, func(
		eventRepo repository.EventRepository,
		dispatchRepo repository.DispatchRepository,
		_ repository.ReturnRepository,
		productRepo repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error {
		// Relee el evento bajo lock: otro caller pudo cerrarlo entre tanto.
		locked, err := eventRepo.GetForUpdate(eventID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if !rental.CanDispatch(locked.State) {
			return domain.ErrEventClosed
		}

		for _, item := range in.Items {
			// Bloquea la fila del pool (SELECT FOR UPDATE), verifica y descuenta.
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			line := entity.DispatchLine{
				ProductID: item.ProductID,
				Source:    item.Source,
				Name:      product.Name,
				SKU:       product.SKU,
				UnitType:  product.UnitType,
				QtyToSend: item.Quantity,
				Rate:      product.Rate,
				BuyPrice:  product.BuyPrice,
				LossPrice: product.LossPrice,
			}
			switch item.Source {
			case entity.SourcePrimary:
				if product.StockQty.LessThan(item.Quantity) {
					return &domain.InsufficientStockError{ProductID: item.ProductID}
				}
				if err := productRepo.UpdateStock(item.ProductID, product.StockQty.Sub(item.Quantity)); err != nil {
					return err
				}
				changes = append(changes, notify.StockChange{
					ProductID:  item.ProductID,
					Pool:       notify.PoolPrimary,
					Delta:      item.Quantity.Neg(),
					Reference:  record.ID,
					OccurredAt: now,
				})
			case entity.SourceB2B:
				pool, err := b2bRepo.GetForUpdate(item.B2BStockID)
				if err != nil {
					return err
				}
				if pool == nil || pool.ProductID != item.ProductID {
					return domain.ErrNotFound
				}
				if pool.QuantityAvailable.LessThan(item.Quantity) {
					return &domain.InsufficientStockError{ProductID: item.ProductID}
				}
				if err := b2bRepo.UpdateQuantity(item.B2BStockID, pool.QuantityAvailable.Sub(item.Quantity)); err != nil {
					return err
				}
				line.B2BStockID = item.B2BStockID
				changes = append(changes, notify.StockChange{
					ProductID:  item.ProductID,
					B2BStockID: item.B2BStockID,
					Pool:       notify.PoolB2B,
					Delta:      item.Quantity.Neg(),
					Reference:  record.ID,
					OccurredAt: now,
				})
			}
			record.Lines = append(record.Lines, line)
		}

		if err := dispatchRepo.Create(record); err != nil {
			return err
		}

		// Un nuevo despacho abre de nuevo la liquidación del evento.
		locked.State = rental.AfterDispatch(locked.State)
		locked.ReturnClosed = false
		locked.UpdatedAt = now
		return eventRepo.Update(locked)
	})
	if err != nil {
		return nil, err
	}

	// Señal de stock después del commit (best-effort, no afecta correctitud).
	for _, ch := range changes {
		uc.notifier.NotifyStockChanged(ch)
	}

	return toDispatchResponse(record), nil
}

func toDispatchResponse(record *entity.DispatchRecord) *dto.DispatchResponse {
	resp := &dto.DispatchResponse{
		ID:        record.ID,
		EventID:   record.EventID,
		CreatedAt: record.CreatedAt,
		Lines:     make([]dto.DispatchLineResponse, 0, len(record.Lines)),
	}
	for _, l := range record.Lines {
		resp.Lines = append(resp.Lines, dto.DispatchLineResponse{
			ProductID:  l.ProductID,
			B2BStockID: l.B2BStockID,
			Source:     l.Source,
			Name:       l.Name,
			SKU:        l.SKU,
			UnitType:   l.UnitType,
			QtyToSend:  l.QtyToSend,
			Rate:       l.Rate,
			BuyPrice:   l.BuyPrice,
			LossPrice:  l.LossPrice,
		})
	}
	return resp
}
