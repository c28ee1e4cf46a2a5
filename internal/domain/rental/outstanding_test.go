package rental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/rental"
)

func dispatchTwoLines() *entity.DispatchRecord {
	return &entity.DispatchRecord{
		ID:      "disp-1",
		EventID: "ev-1",
		Lines: []entity.DispatchLine{
			{ProductID: "sillas", Source: entity.SourcePrimary, QtyToSend: d("10"), Rate: d("5"), BuyPrice: d("15"), LossPrice: d("20")},
			{ProductID: "mesas", Source: entity.SourcePrimary, QtyToSend: d("4"), Rate: d("12"), BuyPrice: d("60")},
		},
	}
}

func returnPass(dispatchID string, lines ...entity.ReturnLine) *entity.ReturnRecord {
	return &entity.ReturnRecord{ID: "ret", EventID: "ev-1", DispatchID: dispatchID, Lines: lines}
}

func TestOutstanding_SinDevolucionesTodoPendiente(t *testing.T) {
	lines := rental.Outstanding(dispatchTwoLines(), nil)
	require.Len(t, lines, 2)

	assert.True(t, d("10").Equal(lines[0].Outstanding))
	assert.True(t, lines[0].AlreadyReturned.IsZero())
	assert.True(t, d("4").Equal(lines[1].Outstanding))
	assert.False(t, rental.AllSettled(lines))
}

func TestOutstanding_RepliegaPasadasParciales(t *testing.T) {
	disp := dispatchTwoLines()
	hist := []*entity.ReturnRecord{
		returnPass(disp.ID, entity.ReturnLine{ProductID: "sillas", Returned: d("6")}),
		returnPass(disp.ID, entity.ReturnLine{ProductID: "sillas", Returned: d("3")}),
	}

	lines := rental.Outstanding(disp, hist)
	sillas := rental.FindLine(lines, "sillas")
	require.NotNil(t, sillas)

	assert.True(t, d("9").Equal(sillas.AlreadyReturned))
	assert.True(t, d("1").Equal(sillas.Outstanding))
	mesas := rental.FindLine(lines, "mesas")
	require.NotNil(t, mesas)
	assert.True(t, d("4").Equal(mesas.Outstanding), "la otra línea no se ve afectada")
}

func TestOutstanding_FaltanteCastigadoTambienDescuentaPendiente(t *testing.T) {
	// 10 despachadas, 6 devueltas, luego 2 devueltas + 2 castigadas al cerrar:
	// el pendiente queda en cero y el despacho se considera liquidado.
	disp := dispatchTwoLines()
	hist := []*entity.ReturnRecord{
		returnPass(disp.ID, entity.ReturnLine{ProductID: "sillas", Returned: d("6")}),
		returnPass(disp.ID,
			entity.ReturnLine{ProductID: "sillas", Returned: d("2"), Shortage: d("2")},
			entity.ReturnLine{ProductID: "mesas", Returned: d("4")},
		),
	}

	lines := rental.Outstanding(disp, hist)
	sillas := rental.FindLine(lines, "sillas")
	require.NotNil(t, sillas)

	assert.True(t, d("8").Equal(sillas.AlreadyReturned))
	assert.True(t, d("2").Equal(sillas.WrittenOff))
	assert.True(t, sillas.Outstanding.IsZero())
	assert.True(t, rental.AllSettled(lines))
	assert.Empty(t, rental.OpenLines(lines))
}

func TestOutstanding_IgnoraDevolucionesDeOtroDespacho(t *testing.T) {
	disp := dispatchTwoLines()
	hist := []*entity.ReturnRecord{
		returnPass("otro-despacho", entity.ReturnLine{ProductID: "sillas", Returned: d("10")}),
	}

	lines := rental.Outstanding(disp, hist)
	sillas := rental.FindLine(lines, "sillas")
	require.NotNil(t, sillas)
	assert.True(t, d("10").Equal(sillas.Outstanding))
}

func TestOutstanding_DespachoNilRetornaNil(t *testing.T) {
	assert.Nil(t, rental.Outstanding(nil, nil))
}

func TestFindLine_ProductoInexistenteRetornaNil(t *testing.T) {
	lines := rental.Outstanding(dispatchTwoLines(), nil)
	assert.Nil(t, rental.FindLine(lines, "carpas"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestState_CanDispatch(t *testing.T) {
	assert.True(t, rental.CanDispatch(entity.EventStateDraft))
	assert.True(t, rental.CanDispatch(entity.EventStateDispatched))
	assert.True(t, rental.CanDispatch(entity.EventStatePartiallyReturned))
	assert.False(t, rental.CanDispatch(entity.EventStateClosed))
}

func TestState_CanReturn(t *testing.T) {
	assert.False(t, rental.CanReturn(entity.EventStateDraft), "en borrador no hay nada que devolver")
	assert.True(t, rental.CanReturn(entity.EventStateDispatched))
	assert.True(t, rental.CanReturn(entity.EventStatePartiallyReturned))
	assert.False(t, rental.CanReturn(entity.EventStateClosed))
}

func TestState_Transiciones(t *testing.T) {
	assert.Equal(t, entity.EventStateDispatched, rental.AfterDispatch(entity.EventStateDraft))
	assert.Equal(t, entity.EventStatePartiallyReturned, rental.AfterDispatch(entity.EventStatePartiallyReturned))
	assert.Equal(t, entity.EventStateClosed, rental.AfterReturn(true))
	assert.Equal(t, entity.EventStatePartiallyReturned, rental.AfterReturn(false))
}
