package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// ProductRepository puerto de productos. GetForUpdate bloquea la fila
// (SELECT FOR UPDATE) para mutar StockQty sin condiciones de carrera.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, qty decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
