package rental

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
)

// OutstandingLine es el estado pendiente de una línea del último despacho,
// derivado por repliegue (fold) del historial de devoluciones.
type OutstandingLine struct {
	ProductID       string
	B2BStockID      string
	Source          string
	Name            string
	SKU             string
	UnitType        string
	QtyToSend       decimal.Decimal
	AlreadyReturned decimal.Decimal // suma de Returned en todas las pasadas previas
	WrittenOff      decimal.Decimal // suma de Shortage castigado en pasadas previas
	Outstanding     decimal.Decimal // QtyToSend - AlreadyReturned - WrittenOff
	Rate            decimal.Decimal
	BuyPrice        decimal.Decimal
	LossPrice       decimal.Decimal
}

// Outstanding repliega todos los ReturnRecords del despacho indicado y deriva
// el pendiente por línea. Es una función pura: el acumulado devuelto nunca se
// toma de un contador almacenado ni de lo que eche el cliente — siempre se
// recalcula desde el log append-only de devoluciones.
func Outstanding(dispatch *entity.DispatchRecord, returns []*entity.ReturnRecord) []OutstandingLine {
	if dispatch == nil {
		return nil
	}
	lines := make([]OutstandingLine, 0, len(dispatch.Lines))
	for _, dl := range dispatch.Lines {
		returned := decimal.Zero
		writtenOff := decimal.Zero
		for _, rec := range returns {
			if rec.DispatchID != dispatch.ID {
				continue
			}
			for _, rl := range rec.Lines {
				if rl.ProductID != dl.ProductID {
					continue
				}
				returned = returned.Add(rl.Returned)
				writtenOff = writtenOff.Add(rl.Shortage)
			}
		}
		lines = append(lines, OutstandingLine{
			ProductID:       dl.ProductID,
			B2BStockID:      dl.B2BStockID,
			Source:          dl.Source,
			Name:            dl.Name,
			SKU:             dl.SKU,
			UnitType:        dl.UnitType,
			QtyToSend:       dl.QtyToSend,
			AlreadyReturned: returned,
			WrittenOff:      writtenOff,
			Outstanding:     dl.QtyToSend.Sub(returned).Sub(writtenOff),
			Rate:            dl.Rate,
			BuyPrice:        dl.BuyPrice,
			LossPrice:       dl.LossPrice,
		})
	}
	return lines
}

// OpenLines filtra las líneas con pendiente > 0 (el set editable de la devolución).
func OpenLines(lines []OutstandingLine) []OutstandingLine {
	open := make([]OutstandingLine, 0, len(lines))
	for _, l := range lines {
		if l.Outstanding.GreaterThan(decimal.Zero) {
			open = append(open, l)
		}
	}
	return open
}

// AllSettled reporta si ninguna línea tiene pendiente (> 0).
func AllSettled(lines []OutstandingLine) bool {
	for _, l := range lines {
		if l.Outstanding.GreaterThan(decimal.Zero) {
			return false
		}
	}
	return true
}

// FindLine busca la línea pendiente de un producto. Retorna nil si no existe.
func FindLine(lines []OutstandingLine, productID string) *OutstandingLine {
	for i := range lines {
		if lines[i].ProductID == productID {
			return &lines[i]
		}
	}
	return nil
}
