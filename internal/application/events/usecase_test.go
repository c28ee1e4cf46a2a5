package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/application/events"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memEvents struct {
	events map[string]*entity.Event
}

func (m *memEvents) Create(e *entity.Event) error { m.events[e.ID] = e; return nil }
func (m *memEvents) GetByID(id string) (*entity.Event, error) {
	return m.events[id], nil
}
func (m *memEvents) GetForUpdate(id string) (*entity.Event, error) { return m.events[id], nil }
func (m *memEvents) Update(e *entity.Event) error                  { m.events[e.ID] = e; return nil }
func (m *memEvents) List(limit, offset int) ([]*entity.Event, error) {
	out := make([]*entity.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

type memDispatches struct {
	records []*entity.DispatchRecord
}

func (m *memDispatches) Create(r *entity.DispatchRecord) error { m.records = append(m.records, r); return nil }
func (m *memDispatches) Latest(eventID string) (*entity.DispatchRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].EventID == eventID {
			return m.records[i], nil
		}
	}
	return nil, nil
}
func (m *memDispatches) ListByEvent(eventID string) ([]*entity.DispatchRecord, error) {
	out := make([]*entity.DispatchRecord, 0)
	for _, r := range m.records {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memReturns struct {
	records []*entity.ReturnRecord
}

func (m *memReturns) Create(r *entity.ReturnRecord) error { m.records = append(m.records, r); return nil }
func (m *memReturns) ListByDispatch(dispatchID string) ([]*entity.ReturnRecord, error) {
	out := make([]*entity.ReturnRecord, 0)
	for _, r := range m.records {
		if r.DispatchID == dispatchID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *memReturns) ListByEvent(eventID string) ([]*entity.ReturnRecord, error) {
	out := make([]*entity.ReturnRecord, 0)
	for _, r := range m.records {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memClients struct {
	clients map[string]*entity.Client
	err     error
}

func (m *memClients) GetByID(id string) (*entity.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.clients[id], nil
}
func (m *memClients) List(limit, offset int) ([]*entity.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*entity.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, c)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc      *events.EventUseCase
	clients *memClients
	events  *memEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ev := &memEvents{events: map[string]*entity.Event{}}
	cl := &memClients{clients: map[string]*entity.Client{
		"cli-1": {ID: "cli-1", Name: "María Pérez"},
	}}
	return &fixture{
		uc:      events.NewEventUseCase(ev, &memDispatches{}, &memReturns{}, cl),
		clients: cl,
		events:  ev,
	}
}

func validRequest() dto.CreateEventRequest {
	return dto.CreateEventRequest{
		ClientID: "cli-1",
		Name:     "Boda Pérez",
		Venue:    "Club Campestre",
		DateFrom: time.Now(),
		DateTo:   time.Now().Add(48 * time.Hour),
		Advance:  decimal.NewFromInt(100),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EventoEnBorrador(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.EventStateDraft, out.State)
	assert.False(t, out.ReturnClosed)
	assert.Equal(t, "cli-1", out.ClientID)
	require.Len(t, f.events.events, 1)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t)

	in := validRequest()
	in.ClientID = "cli-fantasma"
	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_FallaDelRepositorioDeClientesSePropaga(t *testing.T) {
	f := newFixture(t)
	repoErr := errors.New("conexión perdida")
	f.clients.err = repoErr

	_, err := f.uc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr, "una falla de infraestructura no es un 404")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.events.events)
}

func TestCreate_ValidaFechasYMontos(t *testing.T) {
	f := newFixture(t)

	in := validRequest()
	in.DateTo = in.DateFrom.Add(-time.Hour)
	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRequest()
	in.Advance = decimal.NewFromInt(-1)
	_, err = f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
