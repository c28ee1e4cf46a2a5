package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fuente del stock de una línea de despacho.
const (
	SourcePrimary = "primary" // bodega principal (Product.StockQty)
	SourceB2B     = "b2b"     // pool de proveedor (B2BStock)
)

// DispatchRecord es el snapshot inmutable de una salida de stock ("Stock Out")
// hacia un evento. Las cantidades y precios quedan congelados aquí: ediciones
// posteriores al producto no cambian la liquidación.
type DispatchRecord struct {
	ID        string
	EventID   string
	Lines     []DispatchLine
	CreatedAt time.Time
	CreatedBy string
}

// DispatchLine es una línea del snapshot de despacho.
type DispatchLine struct {
	ProductID  string
	B2BStockID string // vacío cuando Source es primary
	Source     string // primary | b2b
	Name       string
	SKU        string
	UnitType   string
	QtyToSend  decimal.Decimal
	Rate       decimal.Decimal
	BuyPrice   decimal.Decimal
	LossPrice  decimal.Decimal
}
