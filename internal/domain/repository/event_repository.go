package repository

import "github.com/jhoicas/Alquileres-api/internal/domain/entity"

// EventRepository puerto de persistencia de eventos de alquiler.
// GetForUpdate bloquea la fila del evento (SELECT FOR UPDATE) para serializar
// devoluciones concurrentes sobre el mismo evento.
type EventRepository interface {
	Create(event *entity.Event) error
	GetByID(id string) (*entity.Event, error)
	GetForUpdate(id string) (*entity.Event, error)
	Update(event *entity.Event) error
	List(limit, offset int) ([]*entity.Event, error)
}
