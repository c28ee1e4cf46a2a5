package entity

import "time"

// Client representa un cliente del negocio de alquiler.
// El CRUD completo de clientes vive fuera del motor; aquí solo se consume como
// referencia (facturación y eventos).
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
