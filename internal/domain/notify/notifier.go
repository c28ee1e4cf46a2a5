package notify

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Pools de stock notificables.
const (
	PoolPrimary = "primary"
	PoolB2B     = "b2b"
)

// StockChange describe una mutación de un pool de stock (despacho, devolución,
// traslado o compra). Delta es positivo para entradas y negativo para salidas.
type StockChange struct {
	ProductID  string
	B2BStockID string // vacío para el pool principal
	Pool       string
	Delta      decimal.Decimal
	Reference  string // ID del despacho/devolución/traslado que originó el cambio
	OccurredAt time.Time
}

// StockNotifier es el puerto de observación de cambios de stock. La entrega es
// best-effort y at-least-once: la correctitud del motor no depende de ella.
type StockNotifier interface {
	NotifyStockChanged(change StockChange)
}

// Fanout distribuye cada cambio a todos los suscriptores registrados, en el
// mismo goroutine del caller. Los suscriptores no deben bloquear.
type Fanout struct {
	mu   sync.RWMutex
	subs []func(StockChange)
}

// NewFanout construye un fanout sin suscriptores.
func NewFanout() *Fanout {
	return &Fanout{}
}

// Subscribe registra un suscriptor. No hay unsubscribe: los suscriptores viven
// lo que vive el proceso.
func (f *Fanout) Subscribe(fn func(StockChange)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

// NotifyStockChanged entrega el cambio a cada suscriptor. Un pánico en un
// suscriptor no debe tumbar la operación de stock que lo originó.
func (f *Fanout) NotifyStockChanged(change StockChange) {
	f.mu.RLock()
	subs := f.subs
	f.mu.RUnlock()
	for _, fn := range subs {
		func() {
			defer func() { _ = recover() }()
			fn(change)
		}()
	}
}

// Nop es un notificador que descarta todo (útil en tests).
type Nop struct{}

func (Nop) NotifyStockChanged(StockChange) {}
