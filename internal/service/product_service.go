package service

import (
	"context"
	"fmt"
	"time"

	"crm-platform/internal/domain"
	"crm-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService defines the interface for product business logic
type ProductService interface {
	// Create persists a product. Price must be strictly positive and stock
	// non-negative; stock defaults to 0 when nil. There is no uniqueness
	// constraint on name.
	Create(ctx context.Context, name string, price decimal.Decimal, stock *int) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, name string, price decimal.Decimal, stock *int) (*domain.Product, error) {
	if price.Cmp(decimal.Zero) <= 0 {
		return nil, newRangeError("Price must be positive")
	}

	stockValue := 0
	if stock != nil {
		stockValue = *stock
	}
	if stockValue < 0 {
		return nil, newRangeError("Stock must be non-negative")
	}

	product := &domain.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Stock:     stockValue,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// List retrieves all products
func (s *productService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListByOrderID retrieves the products referenced by an order
func (s *productService) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.Product, error) {
	products, err := s.productRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order products: %w", err)
	}
	return products, nil
}
