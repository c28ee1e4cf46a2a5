package repository

import "github.com/jhoicas/Alquileres-api/internal/domain/entity"

// InvoiceRepository puerto de facturas de liquidación.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	ListByEvent(eventID string) ([]*entity.Invoice, error)
}
