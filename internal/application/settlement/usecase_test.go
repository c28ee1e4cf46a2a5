package settlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/application/settlement"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memEvents struct {
	events map[string]*entity.Event
}

func (m *memEvents) Create(e *entity.Event) error { m.events[e.ID] = e; return nil }
func (m *memEvents) GetByID(id string) (*entity.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}
func (m *memEvents) GetForUpdate(id string) (*entity.Event, error)   { return m.GetByID(id) }
func (m *memEvents) Update(e *entity.Event) error                    { m.events[e.ID] = e; return nil }
func (m *memEvents) List(limit, offset int) ([]*entity.Event, error) { return nil, nil }

type memDispatches struct {
	records []*entity.DispatchRecord
}

func (m *memDispatches) Create(r *entity.DispatchRecord) error {
	m.records = append(m.records, r)
	return nil
}
func (m *memDispatches) Latest(eventID string) (*entity.DispatchRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].EventID == eventID {
			return m.records[i], nil
		}
	}
	return nil, nil
}
func (m *memDispatches) ListByEvent(eventID string) ([]*entity.DispatchRecord, error) {
	return m.records, nil
}

type memReturns struct {
	records []*entity.ReturnRecord
}

func (m *memReturns) Create(r *entity.ReturnRecord) error {
	m.records = append(m.records, r)
	return nil
}
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
	return m.records, nil
}

type memClients struct {
	clients map[string]*entity.Client
}

func (m *memClients) GetByID(id string) (*entity.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (m *memClients) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }

type memInvoices struct {
	invoices map[string]*entity.Invoice
	lines    []*entity.InvoiceLine
}

func (m *memInvoices) Create(inv *entity.Invoice) error { m.invoices[inv.ID] = inv; return nil }
func (m *memInvoices) CreateLine(l *entity.InvoiceLine) error {
	m.lines = append(m.lines, l)
	return nil
}
func (m *memInvoices) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}
func (m *memInvoices) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	out := make([]*entity.InvoiceLine, 0)
	for _, l := range m.lines {
		if l.InvoiceID == invoiceID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (m *memInvoices) ListByEvent(eventID string) ([]*entity.Invoice, error) { return nil, nil }

type fakeTx struct {
	events     *memEvents
	dispatches *memDispatches
	returns    *memReturns
	clients    *memClients
	invoices   *memInvoices
}

func (f *fakeTx) RunBilling(ctx context.Context, fn func(
	repository.EventRepository,
	repository.DispatchRepository,
	repository.ReturnRepository,
	repository.ClientRepository,
	repository.InvoiceRepository,
) error) error {
	return fn(f.events, f.dispatches, f.returns, f.clients, f.invoices)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: despacho de 10 sillas a 5 y 4 mesas a 12; una pasada de devolución
// con faltante de 2 sillas (40), daño 15 y mora 100.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc *settlement.SettlementUseCase
	tx *fakeTx
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tx := &fakeTx{
		events:     &memEvents{events: map[string]*entity.Event{}},
		dispatches: &memDispatches{},
		returns:    &memReturns{},
		clients:    &memClients{clients: map[string]*entity.Client{}},
		invoices:   &memInvoices{invoices: map[string]*entity.Invoice{}},
	}
	tx.events.events["ev-1"] = &entity.Event{
		ID: "ev-1", ClientID: "cli-1", Name: "Boda Pérez",
		State:   entity.EventStateClosed,
		Advance: d("100"), Security: d("50"),
		DateTo: time.Now(),
	}
	tx.clients.clients["cli-1"] = &entity.Client{ID: "cli-1", Name: "María Pérez"}
	tx.dispatches.records = append(tx.dispatches.records, &entity.DispatchRecord{
		ID: "disp-1", EventID: "ev-1",
		Lines: []entity.DispatchLine{
			{ProductID: "sillas", Name: "Silla rimax", UnitType: "unidad", QtyToSend: d("10"), Rate: d("5")},
			{ProductID: "mesas", Name: "Mesa redonda", UnitType: "unidad", QtyToSend: d("4"), Rate: d("12")},
		},
	})
	tx.returns.records = append(tx.returns.records, &entity.ReturnRecord{
		ID: "ret-1", EventID: "ev-1", DispatchID: "disp-1",
		Lines: []entity.ReturnLine{
			{ProductID: "sillas", Returned: d("8"), Shortage: d("2"), ShortageCost: d("40"), DamageAmount: d("15"), LateFee: d("100"), LineAdjust: d("155")},
			{ProductID: "mesas", Returned: d("4")},
		},
		ReturnDue: d("155"),
	})
	return &fixture{
		uc: settlement.NewSettlementUseCase(tx, tx.invoices, tx.clients),
		tx: tx,
	}
}

func linesOfKind(resp *dto.InvoiceResponse, kind string) []dto.InvoiceLineResponse {
	out := make([]dto.InvoiceLineResponse, 0)
	for _, l := range resp.Lines {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildInvoice_TotalesBasicos(t *testing.T) {
	f := newFixture(t)

	// Subtotal: 10*5 + 4*12 = 98. Ajustes: 40 + 15 + 100 = 155.
	// Total: 98 + 155 = 253. Pagado: anticipo 100 → pendiente 153.
	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{})
	require.NoError(t, err)

	assert.True(t, d("98").Equal(out.SubTotal), "subtotal %s", out.SubTotal)
	assert.True(t, d("155").Equal(out.AdjustmentsTotal))
	assert.True(t, d("253").Equal(out.GrandTotal))
	assert.True(t, d("100").Equal(out.Paid))
	assert.True(t, d("153").Equal(out.Pending))
	assert.Equal(t, entity.InvoiceStatusDraft, out.Status)
	assert.Equal(t, "María Pérez", out.ClientName)

	// Persistida con sus líneas.
	require.Len(t, f.tx.invoices.invoices, 1)
	assert.Len(t, f.tx.invoices.lines, len(out.Lines))
}

func TestBuildInvoice_ComposicionDeLineas(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{})
	require.NoError(t, err)

	assert.Len(t, linesOfKind(out, entity.InvoiceLineBase), 2)
	shortage := linesOfKind(out, entity.InvoiceLineShortage)
	require.Len(t, shortage, 1)
	assert.True(t, d("40").Equal(shortage[0].Amount))
	assert.True(t, d("2").Equal(shortage[0].Qty))

	damage := linesOfKind(out, entity.InvoiceLineDamage)
	require.Len(t, damage, 1)
	assert.True(t, d("15").Equal(damage[0].Amount))

	// La mora se agrega en UNA sola línea, no una por pasada ni por producto.
	lateFee := linesOfKind(out, entity.InvoiceLineLateFee)
	require.Len(t, lateFee, 1)
	assert.True(t, d("100").Equal(lateFee[0].Amount))
	assert.Equal(t, "Recargo por mora", lateFee[0].Description)

	// Las líneas persistidas llevan posición consecutiva; los UUID no ordenan.
	require.Len(t, f.tx.invoices.lines, len(out.Lines))
	for i, l := range f.tx.invoices.lines {
		assert.Equal(t, i, l.LineNo)
	}
}

func TestBuildInvoice_MoraDeVariasPasadasEnUnaLinea(t *testing.T) {
	f := newFixture(t)
	f.tx.returns.records = append(f.tx.returns.records, &entity.ReturnRecord{
		ID: "ret-2", EventID: "ev-1", DispatchID: "disp-1",
		Lines: []entity.ReturnLine{{ProductID: "mesas", LateFee: d("200"), LineAdjust: d("200")}},
	})

	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{})
	require.NoError(t, err)

	lateFee := linesOfKind(out, entity.InvoiceLineLateFee)
	require.Len(t, lateFee, 1)
	assert.True(t, d("300").Equal(lateFee[0].Amount))
}

func TestBuildInvoice_DescuentoSobreSubtotal(t *testing.T) {
	f := newFixture(t)

	// 10% de 98 = 9.80; el descuento no toca los ajustes.
	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{
		DiscountPct: d("10"),
	})
	require.NoError(t, err)

	assert.True(t, d("9.80").Equal(out.DiscountAmount), "descuento %s", out.DiscountAmount)
	assert.True(t, d("243.20").Equal(out.GrandTotal), "total %s", out.GrandTotal)
}

func TestBuildInvoice_LineasManualesEntranAlSubtotal(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{
		ManualLines: []dto.ManualLineRequest{
			{Description: "Transporte", Qty: d("1"), Rate: d("50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, d("148").Equal(out.SubTotal))
	manual := linesOfKind(out, entity.InvoiceLineManual)
	require.Len(t, manual, 1)
	assert.Equal(t, "Transporte", manual[0].Description)
}

func TestBuildInvoice_IncluirGarantiaYPendienteNoNegativo(t *testing.T) {
	f := newFixture(t)
	f.tx.events.events["ev-1"].Advance = d("300")

	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{
		IncludeSecurity: true,
	})
	require.NoError(t, err)

	// Pagado 300 + 50 = 350 > total 253 → pendiente se recorta a cero.
	assert.True(t, d("350").Equal(out.Paid))
	assert.True(t, out.Pending.IsZero())
}

func TestBuildInvoice_EstadoFinal(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{Status: "final"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusFinal, out.Status)
	assert.Contains(t, out.Number, "ALQ-")
}

func TestBuildInvoice_ValidaEntrada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{DiscountPct: d("101")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{Status: "aprobada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{
		ManualLines: []dto.ManualLineRequest{{Description: "", Qty: d("1"), Rate: d("5")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildInvoice_EventoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.BuildInvoice(context.Background(), "no-existe", dto.BuildInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBuildInvoice_NoMutaElEvento(t *testing.T) {
	f := newFixture(t)
	before := *f.tx.events.events["ev-1"]

	_, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{})
	require.NoError(t, err)

	after := *f.tx.events.events["ev-1"]
	assert.Equal(t, before.State, after.State)
	assert.Equal(t, before.ReturnClosed, after.ReturnClosed)
}

func TestGetInvoice_RecuperaConLineas(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.BuildInvoice(context.Background(), "ev-1", dto.BuildInvoiceRequest{})
	require.NoError(t, err)

	got, err := f.uc.GetInvoice(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.GrandTotal.Equal(got.GrandTotal))
	assert.Len(t, got.Lines, len(created.Lines))
	assert.Equal(t, "María Pérez", got.ClientName)
}

func TestGetInvoice_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.GetInvoice(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
