package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crm-platform/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create persists the order row and its product associations atomically;
	// order.Products must already hold the resolved products.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its order_products rows within one scoped
// transaction; a failure on any association row rolls back the order itself.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	return WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		orderQuery := `
			INSERT INTO orders (id, customer_id, total_amount, order_date, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`

		_, err := tx.ExecContext(
			ctx,
			orderQuery,
			order.ID,
			order.CustomerID,
			order.TotalAmount,
			order.OrderDate,
			order.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		assocQuery := `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1, $2)
		`

		for _, product := range order.Products {
			if _, err := tx.ExecContext(ctx, assocQuery, order.ID, product.ID); err != nil {
				return fmt.Errorf("failed to link product %s to order: %w", product.ID, err)
			}
		}

		return nil
	})
}

// FindByID retrieves an order by ID without its product associations
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalAmount,
		&order.OrderDate,
		&order.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

// List retrieves all orders without their product associations
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
		ORDER BY order_date
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.TotalAmount,
			&order.OrderDate,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
