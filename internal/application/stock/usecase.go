package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/notify"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// StockUseCase opera los pools de stock fuera del ciclo despacho/devolución:
// traslados de bodega principal a pools B2B y compras a proveedor (historial
// append-only que solo suma cantidad).
type StockUseCase struct {
	txRunner StockTxRunner
	b2bRepo  repository.B2BStockRepository
	notifier notify.StockNotifier
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner StockTxRunner, b2bRepo repository.B2BStockRepository, notifier notify.StockNotifier) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, b2bRepo: b2bRepo, notifier: notifier}
}

// TransferToB2B traslada unidades de la bodega principal de un producto a uno
// de sus pools B2B. Si el principal no alcanza, rechaza con
// ErrInsufficientPrimaryStock sin alterar ningún pool.
func (uc *StockUseCase) TransferToB2B(ctx context.Context, productID string, in dto.TransferToB2BRequest) error {
	if productID == "" || in.B2BStockID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	ref := uuid.New().String()
	var changes []notify.StockChange

	err := uc.txRunner.RunStock(ctx, func(
		productRepo repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error {
		// Bloquea primero el principal y luego el pool destino (orden fijo
		// producto → B2B para no generar interbloqueos).
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.StockQty.LessThan(in.Quantity) {
			return domain.ErrInsufficientPrimaryStock
		}
		pool, err := b2bRepo.GetForUpdate(in.B2BStockID)
		if err != nil {
			return err
		}
		if pool == nil || pool.ProductID != productID {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateStock(productID, product.StockQty.Sub(in.Quantity)); err != nil {
			return err
		}
		if err := b2bRepo.UpdateQuantity(in.B2BStockID, pool.QuantityAvailable.Add(in.Quantity)); err != nil {
			return err
		}
		changes = append(changes,
			notify.StockChange{ProductID: productID, Pool: notify.PoolPrimary, Delta: in.Quantity.Neg(), Reference: ref, OccurredAt: now},
			notify.StockChange{ProductID: productID, B2BStockID: in.B2BStockID, Pool: notify.PoolB2B, Delta: in.Quantity, Reference: ref, OccurredAt: now},
		)
		return nil
	})
	if err != nil {
		return err
	}

	for _, ch := range changes {
		uc.notifier.NotifyStockChanged(ch)
	}
	return nil
}

// RegisterPurchase registra una compra a proveedor en el historial del pool B2B
// y suma la cantidad. Las compras nunca restan.
func (uc *StockUseCase) RegisterPurchase(ctx context.Context, b2bStockID string, in dto.RegisterPurchaseRequest) (*dto.B2BPurchaseResponse, error) {
	if b2bStockID == "" || !in.Quantity.GreaterThan(decimal.Zero) || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	purchase := &entity.B2BPurchase{
		ID:           uuid.New().String(),
		B2BStockID:   b2bStockID,
		Quantity:     in.Quantity,
		Price:        in.Price,
		SupplierName: in.SupplierName,
		CreatedAt:    now,
	}
	var change notify.StockChange

	err := uc.txRunner.RunStock(ctx, func(
		_ repository.ProductRepository,
		b2bRepo repository.B2BStockRepository,
	) error {
		pool, err := b2bRepo.GetForUpdate(b2bStockID)
		if err != nil {
			return err
		}
		if pool == nil {
			return domain.ErrNotFound
		}
		if purchase.SupplierName == "" {
			purchase.SupplierName = pool.SupplierName
		}
		if err := b2bRepo.AppendPurchase(purchase); err != nil {
			return err
		}
		if err := b2bRepo.UpdateQuantity(b2bStockID, pool.QuantityAvailable.Add(in.Quantity)); err != nil {
			return err
		}
		change = notify.StockChange{
			ProductID:  pool.ProductID,
			B2BStockID: b2bStockID,
			Pool:       notify.PoolB2B,
			Delta:      in.Quantity,
			Reference:  purchase.ID,
			OccurredAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyStockChanged(change)
	return &dto.B2BPurchaseResponse{
		ID:           purchase.ID,
		B2BStockID:   purchase.B2BStockID,
		Quantity:     purchase.Quantity,
		Price:        purchase.Price,
		SupplierName: purchase.SupplierName,
		CreatedAt:    purchase.CreatedAt,
	}, nil
}

// ListB2BByProduct lista los pools B2B de un producto.
func (uc *StockUseCase) ListB2BByProduct(ctx context.Context, productID string) ([]dto.B2BStockResponse, error) {
	pools, err := uc.b2bRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.B2BStockResponse, 0, len(pools))
	for _, p := range pools {
		out = append(out, dto.B2BStockResponse{
			ID:                p.ID,
			ProductID:         p.ProductID,
			SupplierName:      p.SupplierName,
			QuantityAvailable: p.QuantityAvailable,
		})
	}
	return out, nil
}
