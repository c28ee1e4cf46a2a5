package repository

import "github.com/jhoicas/Alquileres-api/internal/domain/entity"

// DispatchRepository puerto para los snapshots de despacho (append-only).
type DispatchRepository interface {
	Create(record *entity.DispatchRecord) error
	// Latest devuelve el despacho más reciente del evento (nil si no hay).
	Latest(eventID string) (*entity.DispatchRecord, error)
	ListByEvent(eventID string) ([]*entity.DispatchRecord, error)
}

// ReturnRepository puerto para las pasadas de devolución (append-only).
type ReturnRepository interface {
	Create(record *entity.ReturnRecord) error
	ListByDispatch(dispatchID string) ([]*entity.ReturnRecord, error)
	ListByEvent(eventID string) ([]*entity.ReturnRecord, error)
}
