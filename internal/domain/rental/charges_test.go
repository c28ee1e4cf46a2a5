package rental_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Alquileres-api/internal/domain/rental"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// LossPrice — cadena de fallback lossPrice → buyPrice → rate
// ──────────────────────────────────────────────────────────────────────────────

func TestLossPrice_UsaLossPriceSiDefinido(t *testing.T) {
	got := rental.LossPrice(d("20"), d("15"), d("5"))
	assert.True(t, d("20").Equal(got))
}

func TestLossPrice_CaeABuyPriceSiLossEsCero(t *testing.T) {
	got := rental.LossPrice(decimal.Zero, d("15"), d("5"))
	assert.True(t, d("15").Equal(got), "cero cuenta como sin definir")
}

func TestLossPrice_CaeARateSiLossYBuySonCero(t *testing.T) {
	got := rental.LossPrice(decimal.Zero, decimal.Zero, d("5"))
	assert.True(t, d("5").Equal(got))
}

func TestLossPrice_TodoCeroRetornaCero(t *testing.T) {
	got := rental.LossPrice(decimal.Zero, decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Shortage — solo se castiga al cerrar la línea
// ──────────────────────────────────────────────────────────────────────────────

func TestShortage_PasadaParcialAbiertaNoCastiga(t *testing.T) {
	// Despachadas 10, devueltas 6 en esta pasada, línea sigue abierta.
	got := rental.Shortage(d("10"), decimal.Zero, d("6"), false)
	assert.True(t, got.IsZero(), "pasada parcial abierta: faltante cero aunque quede pendiente")
}

func TestShortage_CerrarLineaCastigaElPendiente(t *testing.T) {
	// Despachadas 5, devueltas 3 al declarar completada la línea → faltan 2.
	got := rental.Shortage(d("5"), decimal.Zero, d("3"), true)
	assert.True(t, d("2").Equal(got))
}

func TestShortage_ConAcumuladoPrevio(t *testing.T) {
	// 10 despachadas, 6 ya devueltas antes, 3 ahora, se cierra → falta 1.
	got := rental.Shortage(d("10"), d("6"), d("3"), true)
	assert.True(t, d("1").Equal(got))
}

func TestShortage_NuncaNegativo(t *testing.T) {
	got := rental.Shortage(d("5"), d("3"), d("2"), true)
	assert.True(t, got.IsZero())
}

func TestShortageCost_ValoraConLossPrice(t *testing.T) {
	// Faltante de 2 a precio de pérdida 20 → 40.00.
	got := rental.ShortageCost(d("2"), d("20"))
	assert.True(t, d("40").Equal(got))
}

// ──────────────────────────────────────────────────────────────────────────────
// OverdueDays / LateFee — días enteros hacia arriba
// ──────────────────────────────────────────────────────────────────────────────

func TestOverdueDays_SinAtrasoEsCero(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	assert.EqualValues(t, 0, rental.OverdueDays(due.Add(-time.Hour), due))
	assert.EqualValues(t, 0, rental.OverdueDays(due, due))
}

func TestOverdueDays_FraccionDeDiaCuentaComoDiaCompleto(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	assert.EqualValues(t, 1, rental.OverdueDays(due.Add(2*time.Hour), due))
	assert.EqualValues(t, 1, rental.OverdueDays(due.Add(24*time.Hour), due))
	assert.EqualValues(t, 2, rental.OverdueDays(due.Add(25*time.Hour), due))
}

func TestLateFee_PorDiaPorLinea(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	now := due.Add(3 * 24 * time.Hour)
	got := rental.LateFee(d("100"), now, due)
	assert.True(t, d("300").Equal(got))
}

func TestLateFee_SinAtrasoEsCero(t *testing.T) {
	due := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	got := rental.LateFee(d("100"), due.Add(-time.Minute), due)
	assert.True(t, got.IsZero())
}

func TestLineAdjust_SumaYCierraADosDecimales(t *testing.T) {
	got := rental.LineAdjust(d("40"), d("15.555"), d("100"))
	assert.True(t, d("155.56").Equal(got), "got %s", got)
}
