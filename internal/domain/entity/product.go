package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo de alquiler (carpas, sillas, tarimas, etc.).
// StockQty es la bodega principal; el stock B2B de proveedores se maneja aparte
// en B2BStock. Rate es la tarifa de alquiler por unidad; BuyPrice el costo de
// compra; LossPrice la valoración por unidad perdida (si es cero se usa
// BuyPrice y luego Rate como fallback).
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	UnitType    string // pieza, metro, juego...
	Rate        decimal.Decimal
	BuyPrice    decimal.Decimal
	LossPrice   decimal.Decimal
	StockQty    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
