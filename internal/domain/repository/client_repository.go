package repository

import "github.com/jhoicas/Alquileres-api/internal/domain/entity"

// ClientRepository puerto de clientes (solo lectura desde el motor).
type ClientRepository interface {
	GetByID(id string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
}
