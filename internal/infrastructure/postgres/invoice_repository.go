package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación PostgreSQL del puerto InvoiceRepository.
type InvoiceRepo struct {
	q Querier
}

func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, event_id, client_id, number, status, date, sub_total,
	discount_pct, discount_amount, adjustments_total, grand_total, paid, pending,
	created_at, updated_at`

// Create persiste el encabezado de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.EventID, invoice.ClientID, invoice.Number, invoice.Status,
		invoice.Date, invoice.SubTotal, invoice.DiscountPct, invoice.DiscountAmount,
		invoice.AdjustmentsTotal, invoice.GrandTotal, invoice.Paid, invoice.Pending,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la factura.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (id, invoice_id, line_no, product_id, kind, description, unit_type, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.LineNo, nullIfEmpty(line.ProductID), line.Kind, line.Description,
		line.UnitType, line.Qty, line.Rate, line.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene el encabezado de una factura.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.EventID, &inv.ClientID, &inv.Number, &inv.Status,
		&inv.Date, &inv.SubTotal, &inv.DiscountPct, &inv.DiscountAmount,
		&inv.AdjustmentsTotal, &inv.GrandTotal, &inv.Paid, &inv.Pending,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetLinesByInvoiceID lista las líneas de una factura en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, line_no, COALESCE(product_id, ''), kind, description, unit_type, qty, rate, amount
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY line_no ASC`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.LineNo, &l.ProductID, &l.Kind, &l.Description, &l.UnitType, &l.Qty, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListByEvent lista las facturas de un evento, más reciente primero.
func (r *InvoiceRepo) ListByEvent(eventID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE event_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.EventID, &inv.ClientID, &inv.Number, &inv.Status,
			&inv.Date, &inv.SubTotal, &inv.DiscountPct, &inv.DiscountAmount,
			&inv.AdjustmentsTotal, &inv.GrandTotal, &inv.Paid, &inv.Pending,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
