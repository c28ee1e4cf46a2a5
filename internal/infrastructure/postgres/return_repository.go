package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL
// (cabecera en return_records, líneas en return_lines; append-only, nunca se
// actualiza ni borra una pasada aplicada).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste una pasada de devolución: cabecera + líneas líquidadas.
func (r *ReturnRepo) Create(record *entity.ReturnRecord) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO return_records (id, event_id, dispatch_id, return_due, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.EventID, record.DispatchID, record.ReturnDue, record.CreatedAt, record.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert return record: %w", err)
	}
	for i, line := range record.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO return_lines
				(return_id, line_no, product_id, expected, already_returned, returned, shortage,
				 damage_amount, late_fee, rate, buy_price, loss_price, shortage_cost, line_adjust)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			record.ID, i, line.ProductID, line.Expected, line.AlreadyReturned, line.Returned,
			line.Shortage, line.DamageAmount, line.LateFee, line.Rate, line.BuyPrice,
			line.LossPrice, line.ShortageCost, line.LineAdjust,
		)
		if err != nil {
			return fmt.Errorf("insert return line: %w", err)
		}
	}
	return nil
}

// ListByDispatch lista las pasadas aplicadas sobre un despacho, en orden de creación.
func (r *ReturnRepo) ListByDispatch(dispatchID string) ([]*entity.ReturnRecord, error) {
	return r.list(`WHERE dispatch_id = $1`, dispatchID)
}

// ListByEvent lista todas las pasadas del evento, en orden de creación.
func (r *ReturnRepo) ListByEvent(eventID string) ([]*entity.ReturnRecord, error) {
	return r.list(`WHERE event_id = $1`, eventID)
}

func (r *ReturnRepo) list(where string, arg any) ([]*entity.ReturnRecord, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, event_id, dispatch_id, return_due, created_at, created_by
		FROM return_records `+where+` ORDER BY created_at ASC`, arg)
	if err != nil {
		return nil, fmt.Errorf("list return records: %w", err)
	}
	defer rows.Close()

	var records []*entity.ReturnRecord
	for rows.Next() {
		var rec entity.ReturnRecord
		if err := rows.Scan(&rec.ID, &rec.EventID, &rec.DispatchID, &rec.ReturnDue, &rec.CreatedAt, &rec.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan return record: %w", err)
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

func (r *ReturnRepo) loadLines(rec *entity.ReturnRecord) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, expected, already_returned, returned, shortage,
		       damage_amount, late_fee, rate, buy_price, loss_price, shortage_cost, line_adjust
		FROM return_lines WHERE return_id = $1 ORDER BY line_no ASC`, rec.ID)
	if err != nil {
		return fmt.Errorf("list return lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.ReturnLine
		if err := rows.Scan(
			&l.ProductID, &l.Expected, &l.AlreadyReturned, &l.Returned, &l.Shortage,
			&l.DamageAmount, &l.LateFee, &l.Rate, &l.BuyPrice, &l.LossPrice,
			&l.ShortageCost, &l.LineAdjust,
		); err != nil {
			return fmt.Errorf("scan return line: %w", err)
		}
		rec.Lines = append(rec.Lines, l)
	}
	return rows.Err()
}
