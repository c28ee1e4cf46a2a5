package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

var _ repository.B2BStockRepository = (*B2BStockRepo)(nil)

// B2BStockRepo implementación PostgreSQL del puerto B2BStockRepository.
type B2BStockRepo struct {
	q Querier
}

func NewB2BStockRepository(q Querier) *B2BStockRepo {
	return &B2BStockRepo{q: q}
}

const b2bStockColumns = `id, product_id, supplier_name, quantity_available, created_at, updated_at`

// Create persiste un pool B2B nuevo.
func (r *B2BStockRepo) Create(stock *entity.B2BStock) error {
	query := `
		INSERT INTO b2b_stocks (` + b2bStockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.ProductID, stock.SupplierName, stock.QuantityAvailable,
		stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert b2b stock: %w", err)
	}
	return nil
}

func (r *B2BStockRepo) scanStock(row pgx.Row) (*entity.B2BStock, error) {
	var s entity.B2BStock
	err := row.Scan(&s.ID, &s.ProductID, &s.SupplierName, &s.QuantityAvailable, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get b2b stock: %w", err)
	}
	return &s, nil
}

// GetByID obtiene un pool B2B por ID.
func (r *B2BStockRepo) GetByID(id string) (*entity.B2BStock, error) {
	query := `SELECT ` + b2bStockColumns + ` FROM b2b_stocks WHERE id = $1`
	return r.scanStock(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el pool y bloquea la fila para mutar cantidad.
func (r *B2BStockRepo) GetForUpdate(id string) (*entity.B2BStock, error) {
	query := `SELECT ` + b2bStockColumns + ` FROM b2b_stocks WHERE id = $1 FOR UPDATE`
	return r.scanStock(r.q.QueryRow(context.Background(), query, id))
}

// UpdateQuantity actualiza la cantidad disponible del pool (bajo lock).
func (r *B2BStockRepo) UpdateQuantity(id string, qty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE b2b_stocks SET quantity_available = $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("update b2b stock quantity: %w", err)
	}
	return nil
}

// ListByProduct lista los pools B2B de un producto.
func (r *B2BStockRepo) ListByProduct(productID string) ([]*entity.B2BStock, error) {
	query := `SELECT ` + b2bStockColumns + ` FROM b2b_stocks WHERE product_id = $1 ORDER BY supplier_name ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list b2b stocks: %w", err)
	}
	defer rows.Close()

	var stocks []*entity.B2BStock
	for rows.Next() {
		var s entity.B2BStock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.SupplierName, &s.QuantityAvailable, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan b2b stock: %w", err)
		}
		stocks = append(stocks, &s)
	}
	return stocks, rows.Err()
}

// AppendPurchase agrega una entrada al historial de compras (solo inserción).
func (r *B2BStockRepo) AppendPurchase(purchase *entity.B2BPurchase) error {
	query := `
		INSERT INTO b2b_purchases (id, b2b_stock_id, quantity, price, supplier_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.B2BStockID, purchase.Quantity, purchase.Price,
		purchase.SupplierName, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert b2b purchase: %w", err)
	}
	return nil
}

// ListPurchases lista el historial de compras de un pool, más reciente primero.
func (r *B2BStockRepo) ListPurchases(b2bStockID string) ([]*entity.B2BPurchase, error) {
	query := `
		SELECT id, b2b_stock_id, quantity, price, supplier_name, created_at
		FROM b2b_purchases WHERE b2b_stock_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, b2bStockID)
	if err != nil {
		return nil, fmt.Errorf("list b2b purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*entity.B2BPurchase
	for rows.Next() {
		var p entity.B2BPurchase
		if err := rows.Scan(&p.ID, &p.B2BStockID, &p.Quantity, &p.Price, &p.SupplierName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan b2b purchase: %w", err)
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}
