package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order links a customer to the products purchased in a single transaction.
// TotalAmount is fixed at creation time as the sum of the referenced products'
// prices; it is never recomputed when prices change later.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CustomerID  uuid.UUID       `json:"customer_id" db:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	OrderDate   time.Time       `json:"order_date" db:"order_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`

	// Products is populated on creation and by nested query resolution;
	// it is not stored on the orders row itself.
	Products []*Product `json:"products,omitempty" db:"-"`
}
