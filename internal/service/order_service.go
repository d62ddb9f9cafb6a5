package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"crm-platform/internal/domain"
	"crm-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService defines the interface for order business logic
type OrderService interface {
	// Create validates the referenced customer and products, computes the
	// total as the exact decimal sum of the resolved products' prices, and
	// persists the order with its associations atomically. orderDate
	// defaults to the current time when nil.
	Create(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID, orderDate *time.Time) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

func (s *orderService) Create(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID, orderDate *time.Time) (*domain.Order, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, newReferentialError(fmt.Sprintf("Invalid customer ID: %s", customerID))
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	// Duplicate IDs in the request collapse to one association.
	requested := dedupe(productIDs)
	if len(requested) == 0 {
		return nil, newReferentialError("At least one product is required")
	}

	products, err := s.productRepo.FindByIDs(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	if len(products) < len(requested) {
		missing := missingIDs(requested, products)
		return nil, newReferentialError(fmt.Sprintf("Invalid product IDs: %s", strings.Join(missing, ", ")))
	}

	total := decimal.Zero
	for _, product := range products {
		total = total.Add(product.Price)
	}

	date := time.Now().UTC()
	if orderDate != nil {
		date = *orderDate
	}

	order := &domain.Order{
		ID:          uuid.New(),
		CustomerID:  customerID,
		TotalAmount: total,
		OrderDate:   date,
		CreatedAt:   time.Now().UTC(),
		Products:    products,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// List retrieves all orders
func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// missingIDs returns the requested IDs that did not resolve to a product,
// sorted for stable error messages
func missingIDs(requested []uuid.UUID, resolved []*domain.Product) []string {
	found := make(map[uuid.UUID]struct{}, len(resolved))
	for _, product := range resolved {
		found[product.ID] = struct{}{}
	}

	missing := []string{}
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	sort.Strings(missing)
	return missing
}
