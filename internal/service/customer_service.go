package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crm-platform/internal/domain"
	"crm-platform/internal/repository"
	"crm-platform/internal/validation"

	"github.com/google/uuid"
)

// CustomerInput carries the fields accepted when creating a customer
type CustomerInput struct {
	Name  string
	Email string
	Phone *string
}

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)

	// BulkCreate applies Create's validation to each row independently
	// (per-row best-effort policy: a failing row never rolls back its
	// siblings). Failed rows are reported as "Row N: <reason>" with a
	// 1-based N; created customers and error messages are returned together.
	BulkCreate(ctx context.Context, inputs []CustomerInput) ([]*domain.Customer, []string, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

// Create validates and persists a single customer. Validation order: email
// format, email uniqueness, phone format. The entity is either fully valid
// and persisted or not persisted at all.
func (s *customerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		// The unique index catches emails inserted between the
		// uniqueness check and the insert.
		if errors.Is(err, repository.ErrCustomerEmailExists) {
			return nil, newUniquenessError("Email already exists")
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// BulkCreate creates customers row by row. Validation failures are
// row-scoped; infrastructure failures abort the batch.
func (s *customerService) BulkCreate(ctx context.Context, inputs []CustomerInput) ([]*domain.Customer, []string, error) {
	created := []*domain.Customer{}
	rowErrors := []string{}

	for i, input := range inputs {
		customer, err := s.Create(ctx, input)
		if err != nil {
			if verr, ok := AsValidationError(err); ok {
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", i+1, verr.Message))
				continue
			}
			return nil, nil, fmt.Errorf("bulk create aborted at row %d: %w", i+1, err)
		}
		created = append(created, customer)
	}

	return created, rowErrors, nil
}

// GetByID retrieves a customer by ID
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// List retrieves all customers
func (s *customerService) List(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) validate(ctx context.Context, input CustomerInput) error {
	if !validation.ValidEmail(input.Email) {
		return newFormatError("Invalid email format")
	}

	exists, err := s.customerRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing customer: %w", err)
	}
	if exists {
		return newUniquenessError("Email already exists")
	}

	if input.Phone != nil && *input.Phone != "" && !validation.ValidPhone(*input.Phone) {
		return newFormatError("Invalid phone number format")
	}

	return nil
}
