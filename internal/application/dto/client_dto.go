package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientResponse representación de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitType    string          `json:"unit_type"`
	Rate        decimal.Decimal `json:"rate"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
	LossPrice   decimal.Decimal `json:"loss_price"`
	StockQty    decimal.Decimal `json:"stock_qty"`
}

// CreateB2BStockRequest body para POST /api/products/:id/b2b.
type CreateB2BStockRequest struct {
	SupplierName      string          `json:"supplier_name"`
	QuantityAvailable decimal.Decimal `json:"quantity_available"`
}
