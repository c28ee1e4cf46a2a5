package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLateFeePerDay recargo de mora por día y por línea pendiente,
// en unidades de moneda. Configurable vía BILLING_LATE_FEE_PER_DAY.
var DefaultLateFeePerDay = decimal.NewFromInt(100)

// LossPrice resuelve el precio de pérdida efectivo para costear faltantes:
// lossPrice → buyPrice → rate, en ese orden de prioridad; nunca negativo.
// Cero cuenta como "sin definir" y pasa al siguiente fallback.
func LossPrice(lossPrice, buyPrice, rate decimal.Decimal) decimal.Decimal {
	for _, p := range []decimal.Decimal{lossPrice, buyPrice, rate} {
		if p.GreaterThan(decimal.Zero) {
			return p
		}
	}
	return decimal.Zero
}

// Shortage calcula el faltante de una pasada. Solo se castiga cuando la línea
// se cierra (closeLine): lo pendiente que no se devolvió pasa a ser faltante.
// En pasadas parciales abiertas el faltante es cero aunque quede pendiente.
func Shortage(expected, alreadyReturned, returned decimal.Decimal, closeLine bool) decimal.Decimal {
	if !closeLine {
		return decimal.Zero
	}
	s := expected.Sub(alreadyReturned).Sub(returned)
	if s.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return s
}

// ShortageCost valora el faltante: shortage * lossPrice, 2 decimales, nunca negativo.
func ShortageCost(shortage, lossPrice decimal.Decimal) decimal.Decimal {
	cost := shortage.Mul(lossPrice).Round(2)
	if cost.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return cost
}

// OverdueDays días enteros de atraso: ceil((now - dateTo) / 1 día), 0 si no hay atraso.
func OverdueDays(now, dateTo time.Time) int64 {
	if !now.After(dateTo) {
		return 0
	}
	elapsed := now.Sub(dateTo)
	days := int64(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// LateFee recargo de mora uniforme por línea pendiente: perDay * días de atraso.
func LateFee(perDay decimal.Decimal, now, dateTo time.Time) decimal.Decimal {
	days := OverdueDays(now, dateTo)
	if days == 0 {
		return decimal.Zero
	}
	return perDay.Mul(decimal.NewFromInt(days)).Round(2)
}

// LineAdjust total del ajuste de una línea: faltante + daño + mora, 2 decimales.
func LineAdjust(shortageCost, damageAmount, lateFee decimal.Decimal) decimal.Decimal {
	return shortageCost.Add(damageAmount).Add(lateFee).Round(2)
}
