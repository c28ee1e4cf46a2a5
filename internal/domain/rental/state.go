package rental

import "github.com/jhoicas/Alquileres-api/internal/domain/entity"

// Máquina de estados del evento:
// DRAFT → DISPATCHED → PARTIALLY_RETURNED → CLOSED.
// Todos los estados salvo CLOSED aceptan despachos y devoluciones; CLOSED no
// acepta ninguno (reabrir un evento queda fuera: se crea un evento nuevo).

// CanDispatch reporta si el estado admite un nuevo despacho.
func CanDispatch(state string) bool {
	return state != entity.EventStateClosed
}

// CanReturn reporta si el estado admite una devolución. En DRAFT no hay nada
// despachado que devolver.
func CanReturn(state string) bool {
	switch state {
	case entity.EventStateDispatched, entity.EventStatePartiallyReturned:
		return true
	}
	return false
}

// AfterDispatch estado resultante tras un despacho exitoso.
func AfterDispatch(state string) string {
	if state == entity.EventStateDraft {
		return entity.EventStateDispatched
	}
	return state
}

// AfterReturn estado resultante tras aplicar una devolución: CLOSED si todas
// las líneas quedaron liquidadas, PARTIALLY_RETURNED si queda pendiente.
func AfterReturn(allSettled bool) string {
	if allSettled {
		return entity.EventStateClosed
	}
	return entity.EventStatePartiallyReturned
}
