package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRecord es una pasada de liquidación ("Stock In") sobre el último
// despacho de un evento. Es append-only: nunca se muta después de creado.
// El acumulado devuelto se deriva siempre replegando todos los ReturnRecords
// del despacho, nunca de un contador aparte.
type ReturnRecord struct {
	ID         string
	EventID    string
	DispatchID string
	Lines      []ReturnLine
	ReturnDue  decimal.Decimal // suma de LineAdjust de todas las líneas
	CreatedAt  time.Time
	CreatedBy  string
}

// ReturnLine es el resultado liquidado de una línea en una pasada de devolución.
// Shortage solo es > 0 cuando la línea se cerró declarando que no habrá más
// devoluciones: lo no devuelto se castiga como faltante.
type ReturnLine struct {
	ProductID       string
	Expected        decimal.Decimal // QtyToSend del despacho
	AlreadyReturned decimal.Decimal // acumulado devuelto antes de esta pasada
	Returned        decimal.Decimal
	Shortage        decimal.Decimal
	DamageAmount    decimal.Decimal
	LateFee         decimal.Decimal
	Rate            decimal.Decimal
	BuyPrice        decimal.Decimal
	LossPrice       decimal.Decimal
	ShortageCost    decimal.Decimal // Shortage * precio de pérdida efectivo
	LineAdjust      decimal.Decimal // ShortageCost + DamageAmount + LateFee (2 decimales)
}
