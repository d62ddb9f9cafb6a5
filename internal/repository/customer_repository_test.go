package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-platform/internal/domain"

	"github.com/google/uuid"
)

func newCustomer(email string, phone *string) *domain.Customer {
	return &domain.Customer{
		ID:        uuid.New(),
		Name:      "Test Customer",
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCustomerRepository_CreateAndFind(t *testing.T) {
	truncateAll(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	phone := "+1234567890"
	customer := newCustomer("alice@example.com", &phone)
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	found, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("failed to find customer: %v", err)
	}
	if found.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", found.Email)
	}
	if found.Phone == nil || *found.Phone != phone {
		t.Errorf("expected phone %s, got %v", phone, found.Phone)
	}

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("failed to check email: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("failed to check email: %v", err)
	}
	if exists {
		t.Error("expected email to be free")
	}
}

func TestCustomerRepository_NullablePhone(t *testing.T) {
	truncateAll(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	customer := newCustomer("nophone@example.com", nil)
	if err := repo.Create(ctx, customer); err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	found, err := repo.FindByID(ctx, customer.ID)
	if err != nil {
		t.Fatalf("failed to find customer: %v", err)
	}
	if found.Phone != nil {
		t.Errorf("expected nil phone, got %v", *found.Phone)
	}
}

func TestCustomerRepository_DuplicateEmailMapsToSentinel(t *testing.T) {
	truncateAll(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	if err := repo.Create(ctx, newCustomer("taken@example.com", nil)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	err := repo.Create(ctx, newCustomer("taken@example.com", nil))
	if !errors.Is(err, ErrCustomerEmailExists) {
		t.Errorf("expected ErrCustomerEmailExists, got %v", err)
	}
}

func TestCustomerRepository_FindByIDNotFound(t *testing.T) {
	truncateAll(t)
	repo := NewCustomerRepository(testDB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_ListOrdersByCreation(t *testing.T) {
	truncateAll(t)
	repo := NewCustomerRepository(testDB)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, email := range []string{"c1@example.com", "c2@example.com", "c3@example.com"} {
		customer := newCustomer(email, nil)
		customer.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, customer); err != nil {
			t.Fatalf("failed to create %s: %v", email, err)
		}
	}

	customers, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list customers: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	for i, want := range []string{"c1@example.com", "c2@example.com", "c3@example.com"} {
		if customers[i].Email != want {
			t.Errorf("position %d: expected %s, got %s", i, want, customers[i].Email)
		}
	}
}
