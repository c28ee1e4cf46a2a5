package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEventRequest body para POST /api/events.
type CreateEventRequest struct {
	ClientID      string          `json:"client_id"`
	Name          string          `json:"name"`
	Venue         string          `json:"venue,omitempty"`
	DateFrom      time.Time       `json:"date_from"`
	DateTo        time.Time       `json:"date_to"`
	Advance       decimal.Decimal `json:"advance"`
	Security      decimal.Decimal `json:"security"`
	AgreementNote string          `json:"agreement_note,omitempty"`
}

// EventResponse representación de un evento.
type EventResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	Name          string          `json:"name"`
	Venue         string          `json:"venue,omitempty"`
	DateFrom      time.Time       `json:"date_from"`
	DateTo        time.Time       `json:"date_to"`
	Advance       decimal.Decimal `json:"advance"`
	Security      decimal.Decimal `json:"security"`
	State         string          `json:"state"`
	ReturnClosed  bool            `json:"return_closed"`
	AgreementNote string          `json:"agreement_note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EventDetailResponse evento con su historial de despachos y devoluciones.
type EventDetailResponse struct {
	Event      EventResponse      `json:"event"`
	Dispatches []DispatchResponse `json:"dispatches"`
	Returns    []ReturnResponse   `json:"returns"`
}
