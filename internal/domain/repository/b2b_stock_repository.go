package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// B2BStockRepository puerto de pools B2B de proveedor y su historial de compras.
type B2BStockRepository interface {
	Create(stock *entity.B2BStock) error
	GetByID(id string) (*entity.B2BStock, error)
	GetForUpdate(id string) (*entity.B2BStock, error)
	UpdateQuantity(id string, qty decimal.Decimal) error
	ListByProduct(productID string) ([]*entity.B2BStock, error)
	AppendPurchase(purchase *entity.B2BPurchase) error
	ListPurchases(b2bStockID string) ([]*entity.B2BPurchase, error)
}
