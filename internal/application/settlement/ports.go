package settlement

import (
	"context"

	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de lectura del evento y el de facturas (cabecera + líneas atómicas).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		eventRepo repository.EventRepository,
		dispatchRepo repository.DispatchRepository,
		returnRepo repository.ReturnRepository,
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}
