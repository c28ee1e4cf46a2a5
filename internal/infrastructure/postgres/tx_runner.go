package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Alquileres-api/internal/application/dispatch"
	"github.com/jhoicas/Alquileres-api/internal/application/returns"
	"github.com/jhoicas/Alquileres-api/internal/application/settlement"
	"github.com/jhoicas/Alquileres-api/internal/application/stock"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// Ensure TxRunner implementa los puertos transaccionales de la aplicación.
var _ dispatch.TxRunner = (*TxRunner)(nil)
var _ returns.TxRunner = (*TxRunner)(nil)
var _ stock.StockTxRunner = (*TxRunner)(nil)
var _ settlement.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del motor de despacho/devolución
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	eventRepo repository.EventRepository,
	dispatchRepo repository.DispatchRepository,
	returnRepo repository.ReturnRepository,
	productRepo repository.ProductRepository,
	b2bRepo repository.B2BStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewEventRepository(tx),
		NewDispatchRepository(tx),
		NewReturnRepository(tx),
		NewProductRepository(tx),
		NewB2BStockRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con solo los repos de pools de stock
// (traslados y compras B2B).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	b2bRepo repository.B2BStockRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewB2BStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con los repos de lectura del evento y el
// de facturas (para BuildInvoice: cabecera + líneas atómicas).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	eventRepo repository.EventRepository,
	dispatchRepo repository.DispatchRepository,
	returnRepo repository.ReturnRepository,
	clientRepo repository.ClientRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewEventRepository(tx),
		NewDispatchRepository(tx),
		NewReturnRepository(tx),
		NewClientRepository(tx),
		NewInvoiceRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
