package returns

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

// ReturnUseCase liquida devoluciones parciales ("Stock In") contra el último
// despacho de un evento: recalcula el pendiente replegando el historial,
// deriva cargos por faltante/daño/mora en el servidor y acredita el stock
// devuelto a su pool de origen. Idempotente frente a reenvíos: una línea ya
// liquidada produce conflicto, nunca un segundo abono de stock.
type ReturnUseCase struct {
	txRunner      TxRunner
	eventRepo     repository.EventRepository
	dispatchRepo  repository.DispatchRepository
	returnRepo    repository.ReturnRepository
	notifier      notify.StockNotifier
	lateFeePerDay decimal.Decimal
}

// NewReturnUseCase construye el caso de uso. lateFeePerDay en unidades de
// moneda por día de atraso y por línea pendiente.
func NewReturnUseCase(
	txRunner TxRunner,
	eventRepo repository.EventRepository,
	dispatchRepo repository.DispatchRepository,
	returnRepo repository.ReturnRepository,
	notifier notify.StockNotifier,
	lateFeePerDay decimal.Decimal,
) *ReturnUseCase {
	if !lateFeePerDay.GreaterThan(decimal.Zero) {
		lateFeePerDay = rental.DefaultLateFeePerDay
	}
	return &ReturnUseCase{
		txRunner:      txRunner,
		eventRepo:     eventRepo,
		dispatchRepo:  dispatchRepo,
		returnRepo:    returnRepo,
		notifier:      notifier,
		lateFeePerDay: lateFeePerDay,
	}
}

// Outstanding devuelve las líneas pendientes del último despacho (datos del
// formulario de devolución). Si el evento ya está liquidado retorna
// ErrAlreadyReturned: al caller no se le debe presentar el formulario.
func (uc *ReturnUseCase) Outstanding(ctx context.Context, eventID string) (*dto.OutstandingResponse, error) {
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if event.ReturnClosed {
		return nil, domain.ErrAlreadyReturned
	}
	latest, err := uc.dispatchRepo.Latest(eventID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.returnRepo.ListByDispatch(latest.ID)
	if err != nil {
		return nil, err
	}
	open := rental.OpenLines(rental.Outstanding(latest, history))
	if len(open) == 0 {
		return nil, domain.ErrAlreadyReturned
	}

	now := time.Now()
	resp := &dto.OutstandingResponse{
		EventID:     eventID,
		DispatchID:  latest.ID,
		OverdueDays: rental.OverdueDays(now, event.DateTo),
		Lines:       make([]dto.OutstandingLineResponse, 0, len(open)),
	}
	fee := rental.LateFee(uc.lateFeePerDay, now, event.DateTo)
	for _, l := range open {
		resp.Lines = append(resp.Lines, dto.OutstandingLineResponse{
			ProductID:       l.ProductID,
			Name:            l.Name,
			SKU:             l.SKU,
			UnitType:        l.UnitType,
			QtyToSend:       l.QtyToSend,
			AlreadyReturned: l.AlreadyReturned,
			Outstanding:     l.Outstanding,
			Rate:            l.Rate,
			SuggestedFee:    fee,
		})
	}
	return resp, nil
}

// SubmitReturn aplica una pasada de devolución. Los cargos enviados por el
// cliente son advisory: faltante, costo y ajuste se recalculan aquí desde el
// estado persistido. Si el acumulado devuelto observado por el cliente ya no
// coincide (otra pasada ganó la carrera) la línea se rechaza con
// ReturnConflictError en lugar de acreditar stock dos veces.
func (uc *ReturnUseCase) SubmitReturn(ctx context.Context, userID, eventID string, in dto.SubmitReturnRequest) (*dto.SubmitReturnResponse, error) {
	if eventID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Un producto por pasada: dos líneas con el mismo producto pasarían la
	// validación contra el mismo snapshot de pendiente y acreditarían stock
	// dos veces.
	seen := make(map[string]bool, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" ||
			item.Returned.LessThan(decimal.Zero) ||
			item.DamageAmount.LessThan(decimal.Zero) ||
			(item.LateFee != nil && item.LateFee.LessThan(decimal.Zero)) {
			return nil, domain.ErrInvalidInput
		}
		if seen[item.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[item.ProductID] = true
	}

	// Rechazo temprano sin abrir transacción; la verificación definitiva se
	// repite bajo lock dentro de la tx.
	event, err := uc.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if event.ReturnClosed {
		return nil, domain.ErrAlreadyReturned
	}

	now := time.Now()
	record := &entity.ReturnRecord{
		ID:        uuid.New().String(),
		EventID:   eventID,
		CreatedAt: now,
		CreatedBy: userID,
	}
	var changes []notify.StockChange
	var updatedEvent *entity.Event
	allCompleted := false

	err = uc.txRunner.Run(ctx, func(
		eventRepo repository.EventRepository,
		dispatchRepo repository.DispatchRepository,
		returnRepo repository.ReturnRepository,
		productRepo repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error {
		// Lock de la fila del evento: serializa devoluciones concurrentes y
		// hace autoritativo el repliegue que sigue.
		locked, err := eventRepo.GetForUpdate(eventID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.ReturnClosed || !rental.CanReturn(locked.State) {
			return domain.ErrAlreadyReturned
		}

		latest, err := dispatchRepo.Latest(eventID)
		if err != nil {
			return err
		}
		if latest == nil {
			return domain.ErrNotFound
		}
		history, err := returnRepo.ListByDispatch(latest.ID)
		if err != nil {
			return err
		}
		outstanding := rental.Outstanding(latest, history)
		if rental.AllSettled(outstanding) {
			return domain.ErrAlreadyReturned
		}

		record.DispatchID = latest.ID
		defaultFee := rental.LateFee(uc.lateFeePerDay, now, locked.DateTo)

		var conflicts []string
		returnDue := decimal.Zero
		for _, item := range in.Items {
			line := rental.FindLine(outstanding, item.ProductID)
			if line == nil {
				return domain.ErrInvalidInput
			}
			// Línea ya liquidada o acumulado distinto al observado por el
			// cliente: otra pasada se aplicó primero.
			if !line.Outstanding.GreaterThan(decimal.Zero) ||
				!line.AlreadyReturned.Equal(item.AlreadyReturned) {
				conflicts = append(conflicts, item.ProductID)
				continue
			}
			if item.Returned.GreaterThan(line.Outstanding) {
				return domain.ErrInvalidInput
			}

			lateFee := defaultFee
			if item.LateFee != nil {
				lateFee = item.LateFee.Round(2)
			}
			lossPrice := rental.LossPrice(line.LossPrice, line.BuyPrice, line.Rate)
			shortage := rental.Shortage(line.QtyToSend, line.AlreadyReturned.Add(line.WrittenOff), item.Returned, item.Close)
			shortageCost := rental.ShortageCost(shortage, lossPrice)
			lineAdjust := rental.LineAdjust(shortageCost, item.DamageAmount, lateFee)
			returnDue = returnDue.Add(lineAdjust).Round(2)

			record.Lines = append(record.Lines, entity.ReturnLine{
				ProductID:       item.ProductID,
				Expected:        line.QtyToSend,
				AlreadyReturned: line.AlreadyReturned,
				Returned:        item.Returned,
				Shortage:        shortage,
				DamageAmount:    item.DamageAmount.Round(2),
				LateFee:         lateFee,
				Rate:            line.Rate,
				BuyPrice:        line.BuyPrice,
				LossPrice:       line.LossPrice,
				ShortageCost:    shortageCost,
				LineAdjust:      lineAdjust,
			})
		}
		if len(conflicts) > 0 {
			return &domain.ReturnConflictError{ProductIDs: conflicts}
		}
		if len(record.Lines) == 0 {
			return domain.ErrInvalidInput
		}
		record.ReturnDue = returnDue

		// Abona al pool de origen solo lo devuelto; faltantes y daños no
		// regresan al stock.
		for _, rl := range record.Lines {
			if !rl.Returned.GreaterThan(decimal.Zero) {
				continue
			}
			dl := findDispatchLine(latest, rl.ProductID)
			if dl == nil {
				return domain.ErrInvalidInput
			}
			switch dl.Source {
			case entity.SourceB2B:
				pool, err := b2bRepo.GetForUpdate(dl.B2BStockID)
				if err != nil {
					return err
				}
				if pool == nil {
					return domain.ErrNotFound
				}
				if err := b2bRepo.UpdateQuantity(dl.B2BStockID, pool.QuantityAvailable.Add(rl.Returned)); err != nil {
					return err
				}
				changes = append(changes, notify.StockChange{
					ProductID:  rl.ProductID,
					B2BStockID: dl.B2BStockID,
					Pool:       notify.PoolB2B,
					Delta:      rl.Returned,
					Reference:  record.ID,
					OccurredAt: now,
				})
			default:
				product, err := productRepo.GetForUpdate(rl.ProductID)
				if err != nil {
					return err
				}
				if product == nil {
					return domain.ErrNotFound
				}
				if err := productRepo.UpdateStock(rl.ProductID, product.StockQty.Add(rl.Returned)); err != nil {
					return err
				}
				changes = append(changes, notify.StockChange{
					ProductID:  rl.ProductID,
					Pool:       notify.PoolPrimary,
					Delta:      rl.Returned,
					Reference:  record.ID,
					OccurredAt: now,
				})
			}
		}

		if err := returnRepo.Create(record); err != nil {
			return err
		}

		// Recalcula el pendiente con la pasada recién aplicada y cierra el
		// evento si ya no queda nada.
		after := rental.Outstanding(latest, append(history, record))
		allCompleted = rental.AllSettled(after)
		locked.ReturnClosed = allCompleted
		locked.State = rental.AfterReturn(allCompleted)
		locked.UpdatedAt = now
		if err := eventRepo.Update(locked); err != nil {
			return err
		}
		updatedEvent = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ch := range changes {
		uc.notifier.NotifyStockChanged(ch)
	}

	return &dto.SubmitReturnResponse{
		Event:   toEventResponse(updatedEvent),
		Return:  toReturnResponse(record),
		Summary: dto.ReturnSummary{AllCompleted: allCompleted},
	}, nil
}

func findDispatchLine(record *entity.DispatchRecord, productID string) *entity.DispatchLine {
	for i := range record.Lines {
		if record.Lines[i].ProductID == productID {
			return &record.Lines[i]
		}
	}
	return nil
}

func toEventResponse(e *entity.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:            e.ID,
		ClientID:      e.ClientID,
		Name:          e.Name,
		Venue:         e.Venue,
		DateFrom:      e.DateFrom,
		DateTo:        e.DateTo,
		Advance:       e.Advance,
		Security:      e.Security,
		State:         e.State,
		ReturnClosed:  e.ReturnClosed,
		AgreementNote: e.AgreementNote,
		CreatedAt:     e.CreatedAt,
	}
}

func toReturnResponse(r *entity.ReturnRecord) dto.ReturnResponse {
	resp := dto.ReturnResponse{
		ID:         r.ID,
		EventID:    r.EventID,
		DispatchID: r.DispatchID,
		ReturnDue:  r.ReturnDue,
		CreatedAt:  r.CreatedAt,
		Lines:      make([]dto.ReturnLineResponse, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		resp.Lines = append(resp.Lines, dto.ReturnLineResponse{
			ProductID:       l.ProductID,
			Expected:        l.Expected,
			AlreadyReturned: l.AlreadyReturned,
			Returned:        l.Returned,
			Shortage:        l.Shortage,
			DamageAmount:    l.DamageAmount,
			LateFee:         l.LateFee,
			ShortageCost:    l.ShortageCost,
			LineAdjust:      l.LineAdjust,
		})
	}
	return resp
}
