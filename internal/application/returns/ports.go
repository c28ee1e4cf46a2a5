package returns

import (
	"context"

	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La devolución bloquea la fila del evento para
// serializar pasadas concurrentes y recalcula el acumulado devuelto dentro de
// la misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		eventRepo repository.EventRepository,
		dispatchRepo repository.DispatchRepository,
		returnRepo repository.ReturnRepository,
		productRepo repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error) error
}
