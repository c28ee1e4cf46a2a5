package stock

import (
	"context"

	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción con los repos de
// pools de stock (producto principal y B2B).
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error) error
}
