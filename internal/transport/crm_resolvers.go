package transport

import (
	"fmt"
	"strings"
	"time"

	"crm-platform/internal/domain"
	"crm-platform/internal/service"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (r *Resolver) listCustomers(p graphql.ResolveParams) (interface{}, error) {
	customers, err := r.customers.List(p.Context)
	if err != nil {
		return nil, r.resolverError("customers", err)
	}
	return customers, nil
}

func (r *Resolver) listProducts(p graphql.ResolveParams) (interface{}, error) {
	products, err := r.products.List(p.Context)
	if err != nil {
		return nil, r.resolverError("products", err)
	}
	return products, nil
}

func (r *Resolver) listOrders(p graphql.ResolveParams) (interface{}, error) {
	orders, err := r.orders.List(p.Context)
	if err != nil {
		return nil, r.resolverError("orders", err)
	}
	return orders, nil
}

func (r *Resolver) createCustomer(p graphql.ResolveParams) (interface{}, error) {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return nil, r.resolverError("createCustomer", fmt.Errorf("malformed input argument"))
	}

	customer, err := r.customers.Create(p.Context, customerInputFromMap(input))
	if err != nil {
		return nil, r.resolverError("createCustomer", err)
	}

	r.logger.Info("Customer created", zap.String("customer_id", customer.ID.String()))
	return map[string]interface{}{
		"customer": customer,
		"message":  "Customer created successfully",
	}, nil
}

func (r *Resolver) bulkCreateCustomers(p graphql.ResolveParams) (interface{}, error) {
	raw, ok := p.Args["input"].([]interface{})
	if !ok {
		return nil, r.resolverError("bulkCreateCustomers", fmt.Errorf("malformed input argument"))
	}

	inputs := make([]service.CustomerInput, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			inputs = append(inputs, customerInputFromMap(m))
		}
	}

	created, rowErrors, err := r.customers.BulkCreate(p.Context, inputs)
	if err != nil {
		return nil, r.resolverError("bulkCreateCustomers", err)
	}

	r.logger.Info("Bulk customer creation finished",
		zap.Int("requested", len(inputs)),
		zap.Int("created", len(created)),
		zap.Int("failed", len(rowErrors)),
	)
	return map[string]interface{}{
		"customers": created,
		"errors":    rowErrors,
	}, nil
}

func (r *Resolver) createProduct(p graphql.ResolveParams) (interface{}, error) {
	name, _ := p.Args["name"].(string)
	price, ok := p.Args["price"].(decimal.Decimal)
	if !ok {
		// the scalar rejects unparseable literals before resolution
		return nil, r.resolverError("createProduct", fmt.Errorf("malformed price argument"))
	}

	var stock *int
	if v, ok := p.Args["stock"].(int); ok {
		stock = &v
	}

	product, err := r.products.Create(p.Context, name, price, stock)
	if err != nil {
		return nil, r.resolverError("createProduct", err)
	}

	r.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("price", product.Price.String()),
	)
	return map[string]interface{}{
		"product": product,
		"message": "Product created successfully",
	}, nil
}

func (r *Resolver) createOrder(p graphql.ResolveParams) (interface{}, error) {
	customerID, err := parseID(p.Args["customerId"])
	if err != nil {
		return nil, r.resolverError("createOrder", &service.ValidationError{
			Kind:    service.KindReferential,
			Message: fmt.Sprintf("Invalid customer ID: %v", p.Args["customerId"]),
		})
	}

	rawIDs, _ := p.Args["productIds"].([]interface{})
	productIDs := make([]uuid.UUID, 0, len(rawIDs))
	malformed := []string{}
	for _, raw := range rawIDs {
		id, err := parseID(raw)
		if err != nil {
			malformed = append(malformed, fmt.Sprintf("%v", raw))
			continue
		}
		productIDs = append(productIDs, id)
	}
	if len(malformed) > 0 {
		return nil, r.resolverError("createOrder", &service.ValidationError{
			Kind:    service.KindReferential,
			Message: fmt.Sprintf("Invalid product IDs: %s", strings.Join(malformed, ", ")),
		})
	}

	var orderDate *time.Time
	if v, ok := p.Args["orderDate"].(time.Time); ok {
		orderDate = &v
	}

	order, err := r.orders.Create(p.Context, customerID, productIDs, orderDate)
	if err != nil {
		return nil, r.resolverError("createOrder", err)
	}

	r.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total_amount", order.TotalAmount.String()),
		zap.Int("products", len(order.Products)),
	)
	return map[string]interface{}{
		"order":   order,
		"message": "Order created successfully",
	}, nil
}

func (r *Resolver) resolveOrderCustomer(p graphql.ResolveParams) (interface{}, error) {
	order, ok := p.Source.(*domain.Order)
	if !ok {
		return nil, nil
	}
	customer, err := r.customers.GetByID(p.Context, order.CustomerID)
	if err != nil {
		return nil, r.resolverError("order.customer", err)
	}
	return customer, nil
}

func (r *Resolver) resolveOrderProducts(p graphql.ResolveParams) (interface{}, error) {
	order, ok := p.Source.(*domain.Order)
	if !ok {
		return nil, nil
	}
	if order.Products != nil {
		return order.Products, nil
	}
	products, err := r.products.ListByOrderID(p.Context, order.ID)
	if err != nil {
		return nil, r.resolverError("order.products", err)
	}
	return products, nil
}

func customerInputFromMap(m map[string]interface{}) service.CustomerInput {
	input := service.CustomerInput{}
	if v, ok := m["name"].(string); ok {
		input.Name = v
	}
	if v, ok := m["email"].(string); ok {
		input.Email = v
	}
	if v, ok := m["phone"].(string); ok && v != "" {
		input.Phone = &v
	}
	return input
}

// parseID parses a GraphQL ID argument into a UUID
func parseID(v interface{}) (uuid.UUID, error) {
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("id argument is not a string")
	}
	return uuid.Parse(s)
}
