package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un evento de alquiler.
const (
	EventStateDraft             = "DRAFT"              // creado, sin despacho
	EventStateDispatched        = "DISPATCHED"         // con al menos un despacho, sin devoluciones
	EventStatePartiallyReturned = "PARTIALLY_RETURNED" // devoluciones parciales, quedan líneas pendientes
	EventStateClosed            = "CLOSED"             // todo liquidado; no acepta despacho ni devolución
)

// Event representa un evento de alquiler (raíz de agregado): el cliente recibe
// equipo despachado y lo devuelve en una o más pasadas de liquidación.
type Event struct {
	ID            string
	ClientID      string
	Name          string // nombre del evento (boda, feria, etc.)
	Venue         string
	DateFrom      time.Time
	DateTo        time.Time
	Advance       decimal.Decimal // anticipo pagado
	Security      decimal.Decimal // depósito de garantía
	State         string
	ReturnClosed  bool   // true cuando el último despacho quedó completamente liquidado
	AgreementNote string // snapshot opcional del acuerdo firmado
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
