// Command seed populates the database with sample CRM data. Rows that
// already exist (duplicate emails) are skipped, so the command is safe to
// re-run.
package main

import (
	"context"
	"fmt"

	"crm-platform/internal/config"
	"crm-platform/internal/database"
	"crm-platform/internal/logger"
	"crm-platform/internal/repository"
	"crm-platform/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB(), "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	db := dbService.DB()
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	customers := service.NewCustomerService(customerRepo)
	products := service.NewProductService(productRepo)
	orders := service.NewOrderService(orderRepo, customerRepo, productRepo)

	ctx := context.Background()

	customerInputs := []service.CustomerInput{
		{Name: "Alice Johnson", Email: "alice@example.com", Phone: strptr("+1234567890")},
		{Name: "Bob Smith", Email: "bob@example.com", Phone: strptr("123-456-7890")},
		{Name: "Carol Williams", Email: "carol@example.com", Phone: strptr("+1987654321")},
		{Name: "David Brown", Email: "david@example.com", Phone: strptr("555-123-4567")},
		{Name: "Eva Davis", Email: "eva@example.com", Phone: strptr("+1555123456")},
	}

	created, rowErrors, err := customers.BulkCreate(ctx, customerInputs)
	if err != nil {
		log.Fatal("Failed to seed customers", zap.Error(err))
	}
	for _, msg := range rowErrors {
		log.Info("Skipped customer row", zap.String("reason", msg))
	}
	log.Info("Seeded customers", zap.Int("created", len(created)))

	productData := []struct {
		name  string
		price string
		stock int
	}{
		{"Laptop", "999.99", 10},
		{"Mouse", "29.99", 50},
		{"Keyboard", "79.99", 30},
		{"Monitor", "299.99", 15},
		{"Webcam", "49.99", 25},
		{"Headphones", "129.99", 20},
	}

	seededProducts := []uuid.UUID{}
	for _, p := range productData {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatal("Bad seed price", zap.String("product", p.name), zap.Error(err))
		}
		stock := p.stock
		product, err := products.Create(ctx, p.name, price, &stock)
		if err != nil {
			log.Fatal("Failed to seed product", zap.String("product", p.name), zap.Error(err))
		}
		seededProducts = append(seededProducts, product.ID)
		log.Info("Seeded product",
			zap.String("name", product.Name),
			zap.String("price", product.Price.String()),
		)
	}

	// A few orders only make sense when the customers were created this run.
	if len(created) >= 3 && len(seededProducts) >= 6 {
		orderData := []struct {
			customer uuid.UUID
			products []uuid.UUID
		}{
			{created[0].ID, []uuid.UUID{seededProducts[0], seededProducts[1], seededProducts[2]}},
			{created[1].ID, []uuid.UUID{seededProducts[3], seededProducts[4]}},
			{created[2].ID, []uuid.UUID{seededProducts[5]}},
			{created[0].ID, []uuid.UUID{seededProducts[4], seededProducts[5]}},
		}

		for _, o := range orderData {
			order, err := orders.Create(ctx, o.customer, o.products, nil)
			if err != nil {
				log.Fatal("Failed to seed order", zap.Error(err))
			}
			log.Info("Seeded order",
				zap.String("order_id", order.ID.String()),
				zap.String("total_amount", order.TotalAmount.String()),
			)
		}
	}

	log.Info("Database seeding completed")
}

func strptr(s string) *string {
	return &s
}
