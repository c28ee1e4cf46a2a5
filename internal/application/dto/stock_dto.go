package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferToB2BRequest body para POST /api/products/:id/b2b-transfer.
// Traslada unidades de la bodega principal a un pool B2B del mismo producto.
type TransferToB2BRequest struct {
	B2BStockID string          `json:"b2b_stock_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// RegisterPurchaseRequest body para POST /api/b2b/:id/purchases.
type RegisterPurchaseRequest struct {
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	SupplierName string          `json:"supplier_name,omitempty"`
}

// B2BStockResponse pool B2B con su cantidad disponible.
type B2BStockResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	SupplierName      string          `json:"supplier_name"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
}

// B2BPurchaseResponse entrada del historial de compras.
type B2BPurchaseResponse struct {
	ID           string          `json:"id"`
	B2BStockID   string          `json:"b2b_stock_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	SupplierName string          `json:"supplier_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductResponse producto con su stock principal.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitType  string          `json:"unit_type"`
	Rate      decimal.Decimal `json:"rate"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	LossPrice decimal.Decimal `json:"loss_price"`
	StockQty  decimal.Decimal `json:"stock_qty"`
}
