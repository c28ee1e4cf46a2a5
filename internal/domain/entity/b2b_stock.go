package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// B2BStock es un pool secundario de stock ligado a un producto y surtido por un
// proveedor. Se descuenta en despachos cuando el caller lo indica como fuente
// y se alimenta con compras (B2BPurchase) o traslados desde la bodega principal.
type B2BStock struct {
	ID                string
	ProductID         string
	SupplierName      string
	QuantityAvailable decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// B2BPurchase es una entrada del historial de compras de un pool B2B.
// Las compras solo suman cantidad; las restas ocurren vía despacho o traslado.
type B2BPurchase struct {
	ID           string
	B2BStockID   string
	Quantity     decimal.Decimal
	Price        decimal.Decimal
	SupplierName string
	CreatedAt    time.Time
}
