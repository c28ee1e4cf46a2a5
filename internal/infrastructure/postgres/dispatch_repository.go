package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

// DispatchRepo implementación de DispatchRepository sobre PostgreSQL
// (cabecera en dispatch_records, líneas en dispatch_lines; append-only).
type DispatchRepo struct {
	q Querier
}

// NewDispatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDispatchRepository(q Querier) *DispatchRepo {
	return &DispatchRepo{q: q}
}

// Create persiste el snapshot de despacho: cabecera + líneas.
func (r *DispatchRepo) Create(record *entity.DispatchRecord) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO dispatch_records (id, event_id, created_at, created_by) VALUES ($1, $2, $3, $4)`,
		record.ID, record.EventID, record.CreatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert dispatch record: %w", err)
	}
	for i, line := range record.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO dispatch_lines
				(dispatch_id, line_no, product_id, b2b_stock_id, source, name, sku, unit_type, qty_to_send, rate, buy_price, loss_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			record.ID, i, line.ProductID, nullIfEmpty(line.B2BStockID), line.Source,
			line.Name, line.SKU, line.UnitType, line.QtyToSend, line.Rate, line.BuyPrice, line.LossPrice,
		)
		if err != nil {
			return fmt.Errorf("insert dispatch line: %w", err)
		}
	}
	return nil
}

// Latest devuelve el despacho más reciente del evento con sus líneas (nil si no hay).
func (r *DispatchRepo) Latest(eventID string) (*entity.DispatchRecord, error) {
	query := `
		SELECT id, event_id, created_at, created_by
		FROM dispatch_records WHERE event_id = $1
		ORDER BY created_at DESC LIMIT 1`
	var rec entity.DispatchRecord
	err := r.q.QueryRow(context.Background(), query, eventID).Scan(
		&rec.ID, &rec.EventID, &rec.CreatedAt, &rec.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest dispatch: %w", err)
	}
	if err := r.loadLines(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByEvent lista todos los despachos del evento con sus líneas, en orden de creación.
func (r *DispatchRepo) ListByEvent(eventID string) ([]*entity.DispatchRecord, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, event_id, created_at, created_by
		FROM dispatch_records WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list dispatches: %w", err)
	}
	defer rows.Close()

	var records []*entity.DispatchRecord
	for rows.Next() {
		var rec entity.DispatchRecord
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.CreatedAt, &rec.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan dispatch: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := r.loadLines(rec); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *DispatchRepo) loadLines(rec *entity.DispatchRecord) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, COALESCE(b2b_stock_id, ''), source, name, sku, unit_type, qty_to_send, rate, buy_price, loss_price
		FROM dispatch_lines WHERE dispatch_id = $1 ORDER BY line_no ASC`, rec.ID)
	if err != nil {
		return fmt.Errorf("list dispatch lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.DispatchLine
		if err := rows.Scan(
			&l.ProductID, &l.B2BStockID, &l.Source, &l.Name, &l.SKU, &l.UnitType,
			&l.QtyToSend, &l.Rate, &l.BuyPrice, &l.LossPrice,
		); err != nil {
			return fmt.Errorf("scan dispatch line: %w", err)
		}
		rec.Lines = append(rec.Lines, l)
	}
	return rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
