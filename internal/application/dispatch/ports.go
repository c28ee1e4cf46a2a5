package dispatch

import (
	"context"

	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del despacho: o se
// descuentan todos los pools y se guarda el snapshot, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		eventRepo repository.EventRepository,
		dispatchRepo repository.DispatchRepository,
		returnRepo repository.ReturnRepository,
		productRepo repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error) error
}
