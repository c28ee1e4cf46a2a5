package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/application/stock"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/notify"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProducts struct {
	products map[string]*entity.Product
}

func (m *memProducts) Create(p *entity.Product) error { m.products[p.ID] = p; return nil }
func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (m *memProducts) GetForUpdate(id string) (*entity.Product, error) { return m.GetByID(id) }
func (m *memProducts) UpdateStock(id string, qty decimal.Decimal) error {
	m.products[id].StockQty = qty
	return nil
}
func (m *memProducts) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type memB2B struct {
	pools     map[string]*entity.B2BStock
	purchases []*entity.B2BPurchase
}

func (m *memB2B) Create(s *entity.B2BStock) error { m.pools[s.ID] = s; return nil }
func (m *memB2B) GetByID(id string) (*entity.B2BStock, error) {
	s, ok := m.pools[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (m *memB2B) GetForUpdate(id string) (*entity.B2BStock, error) { return m.GetByID(id) }
func (m *memB2B) UpdateQuantity(id string, qty decimal.Decimal) error {
	m.pools[id].QuantityAvailable = qty
	return nil
}
func (m *memB2B) ListByProduct(productID string) ([]*entity.B2BStock, error) {
	out := make([]*entity.B2BStock, 0)
	for _, s := range m.pools {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (m *memB2B) AppendPurchase(p *entity.B2BPurchase) error {
	m.purchases = append(m.purchases, p)
	return nil
}
func (m *memB2B) ListPurchases(id string) ([]*entity.B2BPurchase, error) { return m.purchases, nil }

type fakeTx struct {
	products *memProducts
	b2b      *memB2B
}

func (f *fakeTx) RunStock(ctx context.Context, fn func(
	repository.ProductRepository,
	repository.B2BStockRepository,
) error) error {
	prevProducts := map[string]entity.Product{}
	for id, p := range f.products.products {
		prevProducts[id] = *p
	}
	prevPools := map[string]entity.B2BStock{}
	for id, s := range f.b2b.pools {
		prevPools[id] = *s
	}
	prevPurchases := len(f.b2b.purchases)

	err := fn(f.products, f.b2b)
	if err != nil {
		for id, p := range prevProducts {
			cp := p
			f.products.products[id] = &cp
		}
		for id, s := range prevPools {
			cp := s
			f.b2b.pools[id] = &cp
		}
		f.b2b.purchases = f.b2b.purchases[:prevPurchases]
	}
	return err
}

type captureNotifier struct {
	changes []notify.StockChange
}

func (c *captureNotifier) NotifyStockChanged(ch notify.StockChange) {
	c.changes = append(c.changes, ch)
}

type fixture struct {
	uc       *stock.StockUseCase
	tx       *fakeTx
	notifier *captureNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tx := &fakeTx{
		products: &memProducts{products: map[string]*entity.Product{}},
		b2b:      &memB2B{pools: map[string]*entity.B2BStock{}},
	}
	tx.products.products["sillas"] = &entity.Product{
		ID: "sillas", SKU: "SIL-01", Name: "Silla rimax", StockQty: d("5"),
	}
	tx.b2b.pools["pool-1"] = &entity.B2BStock{
		ID: "pool-1", ProductID: "sillas", SupplierName: "Eventos SAS", QuantityAvailable: d("12"),
	}
	notifier := &captureNotifier{}
	return &fixture{
		uc:       stock.NewStockUseCase(tx, tx.b2b, notifier),
		tx:       tx,
		notifier: notifier,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TransferToB2B
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferToB2B_MueveEntrePools(t *testing.T) {
	f := newFixture(t)

	err := f.uc.TransferToB2B(context.Background(), "sillas", dto.TransferToB2BRequest{
		B2BStockID: "pool-1", Quantity: d("3"),
	})
	require.NoError(t, err)

	assert.True(t, d("2").Equal(f.tx.products.products["sillas"].StockQty))
	assert.True(t, d("15").Equal(f.tx.b2b.pools["pool-1"].QuantityAvailable))

	require.Len(t, f.notifier.changes, 2)
	assert.True(t, d("-3").Equal(f.notifier.changes[0].Delta))
	assert.True(t, d("3").Equal(f.notifier.changes[1].Delta))
	assert.Equal(t, f.notifier.changes[0].Reference, f.notifier.changes[1].Reference,
		"ambos cambios comparten la referencia del traslado")
}

func TestTransferToB2B_PrincipalInsuficienteNoTocaNada(t *testing.T) {
	f := newFixture(t)

	// Pedir 8 cuando el principal solo tiene 5.
	err := f.uc.TransferToB2B(context.Background(), "sillas", dto.TransferToB2BRequest{
		B2BStockID: "pool-1", Quantity: d("8"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientPrimaryStock)

	assert.True(t, d("5").Equal(f.tx.products.products["sillas"].StockQty))
	assert.True(t, d("12").Equal(f.tx.b2b.pools["pool-1"].QuantityAvailable))
	assert.Empty(t, f.notifier.changes)
}

func TestTransferToB2B_PoolDeOtroProductoRechaza(t *testing.T) {
	f := newFixture(t)
	f.tx.b2b.pools["pool-ajeno"] = &entity.B2BStock{
		ID: "pool-ajeno", ProductID: "mesas", QuantityAvailable: d("1"),
	}

	err := f.uc.TransferToB2B(context.Background(), "sillas", dto.TransferToB2BRequest{
		B2BStockID: "pool-ajeno", Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, d("5").Equal(f.tx.products.products["sillas"].StockQty))
}

func TestTransferToB2B_CantidadCeroEsInvalida(t *testing.T) {
	f := newFixture(t)
	err := f.uc.TransferToB2B(context.Background(), "sillas", dto.TransferToB2BRequest{
		B2BStockID: "pool-1", Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPurchase_SumaYRegistraHistorial(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.RegisterPurchase(context.Background(), "pool-1", dto.RegisterPurchaseRequest{
		Quantity: d("20"), Price: d("3.50"),
	})
	require.NoError(t, err)

	assert.True(t, d("32").Equal(f.tx.b2b.pools["pool-1"].QuantityAvailable))
	require.Len(t, f.tx.b2b.purchases, 1)
	assert.Equal(t, "Eventos SAS", out.SupplierName, "hereda el proveedor del pool si no se envía")

	require.Len(t, f.notifier.changes, 1)
	assert.True(t, d("20").Equal(f.notifier.changes[0].Delta))
	assert.Equal(t, notify.PoolB2B, f.notifier.changes[0].Pool)
}

func TestRegisterPurchase_CantidadNoPositivaEsInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RegisterPurchase(context.Background(), "pool-1", dto.RegisterPurchaseRequest{
		Quantity: decimal.Zero, Price: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.tx.b2b.purchases)
}

func TestRegisterPurchase_PoolInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.RegisterPurchase(context.Background(), "no-existe", dto.RegisterPurchaseRequest{
		Quantity: d("1"), Price: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListB2BByProduct(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.ListB2BByProduct(context.Background(), "sillas")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "pool-1", out[0].ID)
	assert.True(t, d("12").Equal(out[0].QuantityAvailable))
}
