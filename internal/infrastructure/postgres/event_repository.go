package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implementación de EventRepository sobre PostgreSQL (usable con pool o tx).
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

const eventColumns = `id, client_id, name, venue, date_from, date_to, advance, security, state, return_closed, agreement_note, created_at, updated_at`

// Create persiste un evento nuevo.
func (r *EventRepo) Create(event *entity.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.ClientID, event.Name, event.Venue, event.DateFrom, event.DateTo,
		event.Advance, event.Security, event.State, event.ReturnClosed, event.AgreementNote,
		event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepo) scanEvent(row pgx.Row) (*entity.Event, error) {
	var e entity.Event
	err := row.Scan(
		&e.ID, &e.ClientID, &e.Name, &e.Venue, &e.DateFrom, &e.DateTo,
		&e.Advance, &e.Security, &e.State, &e.ReturnClosed, &e.AgreementNote,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// GetByID obtiene un evento por ID.
func (r *EventRepo) GetByID(id string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el evento y bloquea la fila (SELECT FOR UPDATE) para
// serializar devoluciones concurrentes sobre el mismo evento.
func (r *EventRepo) GetForUpdate(id string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	return r.scanEvent(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza estado, cierre de devoluciones y metadatos del evento.
func (r *EventRepo) Update(event *entity.Event) error {
	query := `
		UPDATE events
		SET state = $2, return_closed = $3, advance = $4, security = $5, agreement_note = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.State, event.ReturnClosed, event.Advance, event.Security,
		event.AgreementNote, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// List lista eventos con paginación, más recientes primero.
func (r *EventRepo) List(limit, offset int) ([]*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(
			&e.ID, &e.ClientID, &e.Name, &e.Venue, &e.DateFrom, &e.DateTo,
			&e.Advance, &e.Security, &e.State, &e.ReturnClosed, &e.AgreementNote,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
