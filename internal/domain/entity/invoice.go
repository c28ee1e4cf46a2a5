package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de liquidación.
const (
	InvoiceStatusDraft = "DRAFT"
	InvoiceStatusFinal = "FINAL"
)

// Tipos de línea de factura.
const (
	InvoiceLineBase     = "BASE"     // línea del despacho: qty * rate
	InvoiceLineManual   = "MANUAL"   // agregada por el operador, participa igual en subtotal
	InvoiceLineShortage = "SHORTAGE" // cargo por faltante
	InvoiceLineDamage   = "DAMAGE"   // cargo por daño
	InvoiceLineLateFee  = "LATE_FEE" // recargo por mora (una sola línea agregada)
)

// Invoice es el documento de liquidación derivado de un evento. Es un artefacto
// nuevo: no muta el evento ni sus registros de despacho/devolución.
type Invoice struct {
	ID               string
	EventID          string
	ClientID         string
	Number           string
	Status           string
	Date             time.Time
	SubTotal         decimal.Decimal
	DiscountPct      decimal.Decimal
	DiscountAmount   decimal.Decimal
	AdjustmentsTotal decimal.Decimal
	GrandTotal       decimal.Decimal
	Paid             decimal.Decimal
	Pending          decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InvoiceLine es una línea de la factura.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	LineNo      int    // posición dentro de la factura; las UUID no ordenan
	ProductID   string // vacío en líneas manuales o de mora
	Kind        string
	Description string
	UnitType    string
	Qty         decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal // Qty * Rate para BASE/MANUAL; monto directo en ajustes
}
