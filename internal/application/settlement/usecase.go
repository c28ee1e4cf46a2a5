package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// Prefijo del consecutivo de facturas de liquidación.
const invoicePrefix = "ALQ"

var hundred = decimal.NewFromInt(100)

// SettlementUseCase agrega despacho + ajustes de devolución en una factura de
// liquidación. Lee el historial del evento sin mutarlo: la factura es un
// artefacto nuevo (borrador o final).
type SettlementUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
}

// NewSettlementUseCase construye el caso de uso.
func NewSettlementUseCase(txRunner BillingTxRunner, invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository) *SettlementUseCase {
	return &SettlementUseCase{txRunner: txRunner, invoiceRepo: invoiceRepo, clientRepo: clientRepo}
}

// BuildInvoice construye y persiste la factura de un evento:
// líneas base del último despacho a qty*rate, líneas manuales tal cual,
// ajustes por faltante/daño por línea y una sola línea agregada de mora.
// Redondeo a 2 decimales en cada paso de agregación para que la vista previa
// del cliente y lo persistido no deriven distinto.
func (uc *SettlementUseCase) BuildInvoice(ctx context.Context, eventID string, in dto.BuildInvoiceRequest) (*dto.InvoiceResponse, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	switch status {
	case "", "draft":
		status = entity.InvoiceStatusDraft
	case "final":
		status = entity.InvoiceStatusFinal
	case entity.InvoiceStatusDraft, entity.InvoiceStatusFinal:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountPct.LessThan(decimal.Zero) || in.DiscountPct.GreaterThan(hundred) {
		return nil, domain.ErrInvalidInput
	}
	for _, ml := range in.ManualLines {
		if ml.Description == "" || ml.Qty.LessThan(decimal.Zero) || ml.Rate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine
	clientName := ""

	err := uc.txRunner.RunBilling(ctx, func(
		eventRepo repository.EventRepository,
		dispatchRepo repository.DispatchRepository,
		returnRepo repository.ReturnRepository,
		clientRepo repository.ClientRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		event, err := eventRepo.GetByID(eventID)
		if err != nil {
			return err
		}
		if event == nil {
			return domain.ErrNotFound
		}
		latest, err := dispatchRepo.Latest(eventID)
		if err != nil {
			return err
		}
		if latest == nil {
			return domain.ErrNotFound
		}
		history, err := returnRepo.ListByDispatch(latest.ID)
		if err != nil {
			return err
		}
		if client, _ := clientRepo.GetByID(event.ClientID); client != nil {
			clientName = client.Name
		}

		invoiceID := uuid.New().String()

		// 1) Líneas base: el snapshot del último despacho a qty * rate.
		subTotal := decimal.Zero
		for _, dl := range latest.Lines {
			amount := dl.QtyToSend.Mul(dl.Rate).Round(2)
			subTotal = subTotal.Add(amount).Round(2)
			lines = append(lines, &entity.InvoiceLine{
				ID:          uuid.New().String(),
				InvoiceID:   invoiceID,
				ProductID:   dl.ProductID,
				Kind:        entity.InvoiceLineBase,
				Description: dl.Name,
				UnitType:    dl.UnitType,
				Qty:         dl.QtyToSend,
				Rate:        dl.Rate,
				Amount:      amount,
			})
		}

		// 2) Líneas manuales: participan en el subtotal igual que las base.
		for _, ml := range in.ManualLines {
			amount := ml.Qty.Mul(ml.Rate).Round(2)
			subTotal = subTotal.Add(amount).Round(2)
			lines = append(lines, &entity.InvoiceLine{
				ID:          uuid.New().String(),
				InvoiceID:   invoiceID,
				Kind:        entity.InvoiceLineManual,
				Description: ml.Description,
				UnitType:    ml.UnitType,
				Qty:         ml.Qty,
				Rate:        ml.Rate,
				Amount:      amount,
			})
		}

		// 3) Ajustes desde el historial de devoluciones: faltante y daño por
		// línea; la mora se suma en una sola línea agregada.
		adjustments := decimal.Zero
		lateFeeTotal := decimal.Zero
		for _, rec := range history {
			for _, rl := range rec.Lines {
				if rl.ShortageCost.GreaterThan(decimal.Zero) {
					adjustments = adjustments.Add(rl.ShortageCost).Round(2)
					lines = append(lines, &entity.InvoiceLine{
						ID:          uuid.New().String(),
						InvoiceID:   invoiceID,
						ProductID:   rl.ProductID,
						Kind:        entity.InvoiceLineShortage,
						Description: fmt.Sprintf("Faltante: %s", describeLine(latest, rl.ProductID)),
						Qty:         rl.Shortage,
						Rate:        rl.ShortageCost.Div(maxOne(rl.Shortage)).Round(2),
						Amount:      rl.ShortageCost,
					})
				}
				if rl.DamageAmount.GreaterThan(decimal.Zero) {
					adjustments = adjustments.Add(rl.DamageAmount).Round(2)
					lines = append(lines, &entity.InvoiceLine{
						ID:          uuid.New().String(),
						InvoiceID:   invoiceID,
						ProductID:   rl.ProductID,
						Kind:        entity.InvoiceLineDamage,
						Description: fmt.Sprintf("Daño: %s", describeLine(latest, rl.ProductID)),
						Qty:         decimal.NewFromInt(1),
						Rate:        rl.DamageAmount,
						Amount:      rl.DamageAmount,
					})
				}
				lateFeeTotal = lateFeeTotal.Add(rl.LateFee).Round(2)
			}
		}
		if lateFeeTotal.GreaterThan(decimal.Zero) {
			adjustments = adjustments.Add(lateFeeTotal).Round(2)
			lines = append(lines, &entity.InvoiceLine{
				ID:          uuid.New().String(),
				InvoiceID:   invoiceID,
				Kind:        entity.InvoiceLineLateFee,
				Description: "Recargo por mora",
				Qty:         decimal.NewFromInt(1),
				Rate:        lateFeeTotal,
				Amount:      lateFeeTotal,
			})
		}

		// 4) Totales.
		discountAmount := in.DiscountPct.Div(hundred).Mul(subTotal).Round(2)
		grandTotal := subTotal.Sub(discountAmount).Add(adjustments).Round(2)
		paid := event.Advance
		if in.IncludeSecurity {
			paid = paid.Add(event.Security)
		}
		paid = paid.Round(2)
		pending := grandTotal.Sub(paid).Round(2)
		if pending.LessThan(decimal.Zero) {
			pending = decimal.Zero
		}

		inv = &entity.Invoice{
			ID:               invoiceID,
			EventID:          eventID,
			ClientID:         event.ClientID,
			Number:           fmt.Sprintf("%s-%d", invoicePrefix, now.Unix()),
			Status:           status,
			Date:             now,
			SubTotal:         subTotal,
			DiscountPct:      in.DiscountPct,
			DiscountAmount:   discountAmount,
			AdjustmentsTotal: adjustments,
			GrandTotal:       grandTotal,
			Paid:             paid,
			Pending:          pending,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for i, line := range lines {
			line.LineNo = i
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, clientName, lines), nil
}

// GetInvoice obtiene una factura por ID con sus líneas.
func (uc *SettlementUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(inv.ClientID); client != nil {
		clientName = client.Name
	}
	return toInvoiceResponse(inv, clientName, lines), nil
}

func describeLine(dispatch *entity.DispatchRecord, productID string) string {
	for _, dl := range dispatch.Lines {
		if dl.ProductID == productID {
			return dl.Name
		}
	}
	return productID
}

func maxOne(q decimal.Decimal) decimal.Decimal {
	if q.GreaterThan(decimal.Zero) {
		return q
	}
	return decimal.NewFromInt(1)
}

func toInvoiceResponse(inv *entity.Invoice, clientName string, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:               inv.ID,
		EventID:          inv.EventID,
		ClientID:         inv.ClientID,
		ClientName:       clientName,
		Number:           inv.Number,
		Status:           inv.Status,
		Date:             inv.Date,
		SubTotal:         inv.SubTotal,
		DiscountPct:      inv.DiscountPct,
		DiscountAmount:   inv.DiscountAmount,
		AdjustmentsTotal: inv.AdjustmentsTotal,
		GrandTotal:       inv.GrandTotal,
		Paid:             inv.Paid,
		Pending:          inv.Pending,
		Lines:            make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Kind:        l.Kind,
			Description: l.Description,
			UnitType:    l.UnitType,
			Qty:         l.Qty,
			Rate:        l.Rate,
			Amount:      l.Amount,
		})
	}
	return resp
}
