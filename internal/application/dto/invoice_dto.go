package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualLineRequest línea ad hoc agregada por el operador; participa en el
// subtotal igual que las líneas base del despacho.
type ManualLineRequest struct {
	Description string          `json:"description"`
	UnitType    string          `json:"unit_type,omitempty"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
}

// BuildInvoiceRequest body para POST /api/events/:id/invoice.
type BuildInvoiceRequest struct {
	ManualLines     []ManualLineRequest `json:"manual_lines,omitempty"`
	DiscountPct     decimal.Decimal     `json:"discount_pct"`
	IncludeSecurity bool                `json:"include_security"`
	Status          string              `json:"status"` // draft | final
}

// InvoiceLineResponse línea de factura.
type InvoiceLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	UnitType    string          `json:"unit_type,omitempty"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura de liquidación con totales.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	EventID          string                `json:"event_id"`
	ClientID         string                `json:"client_id"`
	ClientName       string                `json:"client_name,omitempty"`
	Number           string                `json:"number"`
	Status           string                `json:"status"`
	Date             time.Time             `json:"date"`
	SubTotal         decimal.Decimal       `json:"sub_total"`
	DiscountPct      decimal.Decimal       `json:"discount_pct"`
	DiscountAmount   decimal.Decimal       `json:"discount_amount"`
	AdjustmentsTotal decimal.Decimal       `json:"adjustments_total"`
	GrandTotal       decimal.Decimal       `json:"grand_total"`
	Paid             decimal.Decimal       `json:"paid"`
	Pending          decimal.Decimal       `json:"pending"`
	Lines            []InvoiceLineResponse `json:"lines"`
}
