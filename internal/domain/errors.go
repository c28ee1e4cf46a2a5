package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrUserNotFound             = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists       = errors.New("el email ya está registrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("recurso duplicado")
	ErrUnauthorized             = errors.New("no autorizado")
	ErrForbidden                = errors.New("acceso denegado")
	ErrEventClosed              = errors.New("evento cerrado")
	ErrAlreadyReturned          = errors.New("devolución ya completada")
	ErrReturnConflict           = errors.New("conflicto de devolución concurrente")
	ErrInsufficientStock        = errors.New("stock insuficiente")
	ErrInsufficientPrimaryStock = errors.New("stock principal insuficiente")
)

// InsufficientStockError identifica la línea que hizo fallar un despacho.
// errors.Is(err, ErrInsufficientStock) sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s", e.ProductID)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ReturnConflictError indica que otra devolución se aplicó primero sobre las
// líneas indicadas: el caller debe recargar el pendiente y reintentar solo el remanente.
type ReturnConflictError struct {
	ProductIDs []string
}

func (e *ReturnConflictError) Error() string {
	return fmt.Sprintf("devolución concurrente detectada en líneas: %s", strings.Join(e.ProductIDs, ", "))
}

func (e *ReturnConflictError) Unwrap() error { return ErrReturnConflict }
