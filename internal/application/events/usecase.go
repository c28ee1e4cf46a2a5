package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// EventUseCase gestiona el ciclo de vida básico de los eventos de alquiler:
// creación en borrador, lectura con historial y listado. Los despachos y
// devoluciones mutan el evento desde sus propios casos de uso.
type EventUseCase struct {
	eventRepo    repository.EventRepository
	dispatchRepo repository.DispatchRepository
	returnRepo   repository.ReturnRepository
	clientRepo   repository.ClientRepository
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(
	eventRepo repository.EventRepository,
	dispatchRepo repository.DispatchRepository,
	returnRepo repository.ReturnRepository,
	clientRepo repository.ClientRepository,
) *EventUseCase {
	return &EventUseCase{
		eventRepo:    eventRepo,
		dispatchRepo: dispatchRepo,
		returnRepo:   returnRepo,
		clientRepo:   clientRepo,
	}
}

// Create crea un evento en borrador.
func (uc *EventUseCase) Create(ctx context.Context, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	if in.ClientID == "" || in.Name == "" || in.DateFrom.IsZero() || in.DateTo.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.DateTo.Before(in.DateFrom) {
		return nil, domain.ErrInvalidInput
	}
	if in.Advance.LessThan(decimal.Zero) || in.Security.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	event := &entity.Event{
		ID:            uuid.New().String(),
		ClientID:      in.ClientID,
		Name:          in.Name,
		Venue:         in.Venue,
		DateFrom:      in.DateFrom,
		DateTo:        in.DateTo,
		Advance:       in.Advance,
		Security:      in.Security,
		State:         entity.EventStateDraft,
		ReturnClosed:  false,
		AgreementNote: in.AgreementNote,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.eventRepo.Create(event); err != nil {
		return nil, err
	}
	resp := toEventResponse(event)
	return &resp, nil
}

// Get obtiene un evento con su historial de despachos y devoluciones.
func (uc *EventUseCase) Get(ctx context.Context, id string) (*dto.EventDetailResponse, error) {
	event, err := uc.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	dispatches, err := uc.dispatchRepo.ListByEvent(id)
	if err != nil {
		return nil, err
	}
	returns, err := uc.returnRepo.ListByEvent(id)
	if err != nil {
		return nil, err
	}

	detail := &dto.EventDetailResponse{
		Event:      toEventResponse(event),
		Dispatches: make([]dto.DispatchResponse, 0, len(dispatches)),
		Returns:    make([]dto.ReturnResponse, 0, len(returns)),
	}
	for _, d := range dispatches {
		detail.Dispatches = append(detail.Dispatches, toDispatchResponse(d))
	}
	for _, r := range returns {
		detail.Returns = append(detail.Returns, toReturnResponse(r))
	}
	return detail, nil
}

// List lista eventos con paginación.
func (uc *EventUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.EventResponse, error) {
	page.DefaultPage()
	events, err := uc.eventRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out, nil
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

func toDispatchResponse(d *entity.DispatchRecord) dto.DispatchResponse {
	resp := dto.DispatchResponse{
		ID:        d.ID,
		EventID:   d.EventID,
		CreatedAt: d.CreatedAt,
		Lines:     make([]dto.DispatchLineResponse, 0, len(d.Lines)),
	}
	for _, l := range d.Lines {
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
