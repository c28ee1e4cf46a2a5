package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DispatchItemRequest una línea solicitada en un despacho ("Stock Out").
// Source indica el pool a descontar: primary (bodega principal) o b2b
// (B2BStockID obligatorio).
type DispatchItemRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Source     string          `json:"source"` // primary | b2b
	B2BStockID string          `json:"b2b_stock_id,omitempty"`
}

// DispatchRequest body para POST /api/events/:id/dispatch.
type DispatchRequest struct {
	Items []DispatchItemRequest `json:"items"`
}

// DispatchLineResponse línea del snapshot de despacho.
type DispatchLineResponse struct {
	ProductID  string          `json:"product_id"`
	B2BStockID string          `json:"b2b_stock_id,omitempty"`
	Source     string          `json:"source"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	UnitType   string          `json:"unit_type"`
	QtyToSend  decimal.Decimal `json:"qty_to_send"`
	Rate       decimal.Decimal `json:"rate"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	LossPrice  decimal.Decimal `json:"loss_price"`
}

// DispatchResponse snapshot de despacho.
type DispatchResponse struct {
	ID        string                 `json:"id"`
	EventID   string                 `json:"event_id"`
	Lines     []DispatchLineResponse `json:"lines"`
	CreatedAt time.Time              `json:"created_at"`
}
