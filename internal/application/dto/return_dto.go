package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnItemRequest una línea enviada en una pasada de devolución ("Stock In").
// AlreadyReturned es lo acumulado que el cliente observó al armar el formulario:
// el servidor lo recalcula y, si ya no coincide (otra devolución pasó primero),
// rechaza la línea con conflicto en vez de acreditar stock dos veces.
// Close declara que no habrá más devoluciones de esta línea: lo pendiente no
// devuelto se castiga como faltante.
type ReturnItemRequest struct {
	ProductID       string           `json:"product_id"`
	Returned        decimal.Decimal  `json:"returned"`
	AlreadyReturned decimal.Decimal  `json:"already_returned"`
	DamageAmount    decimal.Decimal  `json:"damage_amount"`
	LateFee         *decimal.Decimal `json:"late_fee,omitempty"` // nil = aplicar política por defecto
	Close           bool             `json:"close"`
}

// SubmitReturnRequest body para POST /api/events/:id/returns.
// ReturnDue es advisory: el total se recalcula en el servidor.
type SubmitReturnRequest struct {
	Items     []ReturnItemRequest `json:"items"`
	ReturnDue decimal.Decimal     `json:"return_due"`
}

// ReturnLineResponse línea liquidada de una pasada de devolución.
type ReturnLineResponse struct {
	ProductID       string          `json:"product_id"`
	Expected        decimal.Decimal `json:"expected"`
	AlreadyReturned decimal.Decimal `json:"already_returned"`
	Returned        decimal.Decimal `json:"returned"`
	Shortage        decimal.Decimal `json:"shortage"`
	DamageAmount    decimal.Decimal `json:"damage_amount"`
	LateFee         decimal.Decimal `json:"late_fee"`
	ShortageCost    decimal.Decimal `json:"shortage_cost"`
	LineAdjust      decimal.Decimal `json:"line_adjust"`
}

// ReturnResponse pasada de devolución liquidada.
type ReturnResponse struct {
	ID         string               `json:"id"`
	EventID    string               `json:"event_id"`
	DispatchID string               `json:"dispatch_id"`
	Lines      []ReturnLineResponse `json:"lines"`
	ReturnDue  decimal.Decimal      `json:"return_due"`
	CreatedAt  time.Time            `json:"created_at"`
}

// SubmitReturnResponse resultado de una pasada de devolución.
type SubmitReturnResponse struct {
	Event   EventResponse  `json:"event"`
	Return  ReturnResponse `json:"return"`
	Summary ReturnSummary  `json:"summary"`
}

// ReturnSummary resumen de la pasada.
type ReturnSummary struct {
	AllCompleted bool `json:"all_completed"`
}

// OutstandingLineResponse línea pendiente del último despacho (formulario de devolución).
type OutstandingLineResponse struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	UnitType        string          `json:"unit_type"`
	QtyToSend       decimal.Decimal `json:"qty_to_send"`
	AlreadyReturned decimal.Decimal `json:"already_returned"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	Rate            decimal.Decimal `json:"rate"`
	SuggestedFee    decimal.Decimal `json:"suggested_late_fee"` // mora por defecto para esta pasada
}

// OutstandingResponse respuesta de GET /api/events/:id/outstanding.
type OutstandingResponse struct {
	EventID     string                    `json:"event_id"`
	DispatchID  string                    `json:"dispatch_id"`
	OverdueDays int64                     `json:"overdue_days"`
	Lines       []OutstandingLineResponse `json:"lines"`
}
