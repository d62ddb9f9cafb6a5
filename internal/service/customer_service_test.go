package service

import (
	"context"
	"fmt"
	"testing"

	"crm-platform/internal/domain"
	"crm-platform/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing
type mockCustomerRepository struct {
	customers map[uuid.UUID]*domain.Customer
	byEmail   map[string]*domain.Customer
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{
		customers: make(map[uuid.UUID]*domain.Customer),
		byEmail:   make(map[string]*domain.Customer),
	}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if _, exists := m.byEmail[customer.Email]; exists {
		return repository.ErrCustomerEmailExists
	}
	m.customers[customer.ID] = customer
	m.byEmail[customer.Email] = customer
	return nil
}

func (m *mockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, exists := m.byEmail[email]
	return exists, nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	customer, exists := m.customers[id]
	if !exists {
		return nil, repository.ErrCustomerNotFound
	}
	return customer, nil
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	customers := []*domain.Customer{}
	for _, customer := range m.customers {
		customers = append(customers, customer)
	}
	return customers, nil
}

func strptr(s string) *string {
	return &s
}

func TestCreateCustomer_StoresPhoneVerbatim(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	customer, err := svc.Create(ctx, CustomerInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: strptr("+1234567890"),
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	if customer.Phone == nil || *customer.Phone != "+1234567890" {
		t.Errorf("expected phone stored verbatim, got %v", customer.Phone)
	}
	if len(repo.customers) != 1 {
		t.Errorf("expected 1 persisted customer, got %d", len(repo.customers))
	}
}

func TestCreateCustomer_WithoutPhone(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)

	customer, err := svc.Create(context.Background(), CustomerInput{
		Name:  "Bob",
		Email: "bob@example.com",
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if customer.Phone != nil {
		t.Errorf("expected nil phone, got %v", *customer.Phone)
	}
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(ctx, CustomerInput{Name: "Other Alice", Email: "alice@example.com"})
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != KindUniqueness {
		t.Errorf("expected uniqueness kind, got %s", verr.Kind)
	}
	if verr.Message != "Email already exists" {
		t.Errorf("unexpected message: %s", verr.Message)
	}
	if len(repo.customers) != 1 {
		t.Errorf("expected no new row, got %d rows", len(repo.customers))
	}
}

func TestCreateCustomer_InvalidPhone(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)

	_, err := svc.Create(context.Background(), CustomerInput{
		Name:  "Carol",
		Email: "carol@example.com",
		Phone: strptr("12345"),
	})
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != KindFormat {
		t.Errorf("expected format kind, got %s", verr.Kind)
	}
	if verr.Message != "Invalid phone number format" {
		t.Errorf("unexpected message: %s", verr.Message)
	}
	if len(repo.customers) != 0 {
		t.Errorf("expected nothing persisted, got %d rows", len(repo.customers))
	}
}

func TestCreateCustomer_InvalidEmail(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)

	_, err := svc.Create(context.Background(), CustomerInput{Name: "Dave", Email: "not-an-email"})
	verr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != KindFormat {
		t.Errorf("expected format kind, got %s", verr.Kind)
	}
}

func TestBulkCreate_PerRowBestEffort(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	inputs := []CustomerInput{
		{Name: "Alice", Email: "alice@example.com", Phone: strptr("+1234567890")},
		{Name: "Duplicate Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com", Phone: strptr("123-456-7890")},
	}

	created, rowErrors, err := svc.BulkCreate(ctx, inputs)
	if err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}

	if len(created) != 2 {
		t.Errorf("expected 2 created customers, got %d", len(created))
	}
	if len(rowErrors) != 1 {
		t.Fatalf("expected 1 row error, got %d: %v", len(rowErrors), rowErrors)
	}
	if rowErrors[0] != "Row 2: Email already exists" {
		t.Errorf("unexpected row error: %s", rowErrors[0])
	}
	if len(repo.customers) != 2 {
		t.Errorf("expected 2 persisted rows, got %d", len(repo.customers))
	}
}

func TestBulkCreate_RowNumbersAreOneBased(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)

	inputs := []CustomerInput{
		{Name: "Bad Phone", Email: "p1@example.com", Phone: strptr("nope")},
		{Name: "Ok", Email: "p2@example.com"},
		{Name: "Bad Email", Email: "broken"},
	}

	created, rowErrors, err := svc.BulkCreate(context.Background(), inputs)
	if err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}

	if len(created) != 1 {
		t.Errorf("expected 1 created customer, got %d", len(created))
	}
	want := []string{
		"Row 1: Invalid phone number format",
		"Row 3: Invalid email format",
	}
	if len(rowErrors) != len(want) {
		t.Fatalf("expected %d row errors, got %v", len(want), rowErrors)
	}
	for i := range want {
		if rowErrors[i] != want[i] {
			t.Errorf("row error %d: got %q, want %q", i, rowErrors[i], want[i])
		}
	}
}

func TestBulkCreate_EmptyInput(t *testing.T) {
	svc := NewCustomerService(newMockCustomerRepository())

	created, rowErrors, err := svc.BulkCreate(context.Background(), nil)
	if err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}
	if len(created) != 0 || len(rowErrors) != 0 {
		t.Errorf("expected empty result, got %d created, %d errors", len(created), len(rowErrors))
	}
}

func TestBulkCreate_ManyValidRows(t *testing.T) {
	repo := newMockCustomerRepository()
	svc := NewCustomerService(repo)

	inputs := make([]CustomerInput, 20)
	for i := range inputs {
		inputs[i] = CustomerInput{
			Name:  fmt.Sprintf("Customer %d", i),
			Email: fmt.Sprintf("customer%d@example.com", i),
		}
	}

	created, rowErrors, err := svc.BulkCreate(context.Background(), inputs)
	if err != nil {
		t.Fatalf("bulk create failed: %v", err)
	}
	if len(created) != 20 || len(rowErrors) != 0 {
		t.Errorf("expected 20 created and no errors, got %d and %v", len(created), rowErrors)
	}
}
