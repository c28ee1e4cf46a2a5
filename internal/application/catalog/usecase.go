package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/domain"
	"github.com/jhoicas/Alquileres-api/internal/domain/entity"
	"github.com/jhoicas/Alquileres-api/internal/domain/repository"
)

// CatalogUseCase expone el catálogo de productos y clientes que consume el
// motor de despachos. El CRUD completo de clientes vive en otro sistema; aquí
// solo se listan y consultan.
type CatalogUseCase struct {
	productRepo repository.ProductRepository
	b2bRepo     repository.B2BStockRepository
	clientRepo  repository.ClientRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	b2bRepo repository.B2BStockRepository,
	clientRepo repository.ClientRepository,
) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, b2bRepo: b2bRepo, clientRepo: clientRepo}
}

// CreateProduct da de alta un producto con su stock principal inicial.
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.UnitType == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Rate.IsNegative() || in.BuyPrice.IsNegative() || in.LossPrice.IsNegative() || in.StockQty.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		UnitType:    in.UnitType,
		Rate:        in.Rate,
		BuyPrice:    in.BuyPrice,
		LossPrice:   in.LossPrice,
		StockQty:    in.StockQty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetProduct obtiene un producto por ID.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// ListProducts lista el catálogo con paginación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// CreateB2BStock abre un pool B2B vacío (o con saldo inicial) para un producto.
func (uc *CatalogUseCase) CreateB2BStock(ctx context.Context, productID string, in dto.CreateB2BStockRequest) (*dto.B2BStockResponse, error) {
	if productID == "" || in.SupplierName == "" || in.QuantityAvailable.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	pool := &entity.B2BStock{
		ID:                uuid.New().String(),
		ProductID:         productID,
		SupplierName:      in.SupplierName,
		QuantityAvailable: in.QuantityAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.b2bRepo.Create(pool); err != nil {
		return nil, err
	}
	return &dto.B2BStockResponse{
		ID:                pool.ID,
		ProductID:         pool.ProductID,
		SupplierName:      pool.SupplierName,
		QuantityAvailable: pool.QuantityAvailable,
	}, nil
}

// GetClient obtiene un cliente por ID.
func (uc *CatalogUseCase) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// ListClients lista clientes con paginación.
func (uc *CatalogUseCase) ListClients(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		UnitType:  p.UnitType,
		Rate:      p.Rate,
		BuyPrice:  p.BuyPrice,
		LossPrice: p.LossPrice,
		StockQty:  p.StockQty,
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
