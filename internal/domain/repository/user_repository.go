package repository

import "github.com/jhoicas/Alquileres-api/internal/domain/entity"

// UserRepository puerto de usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
