package transport

import (
	"context"
	"sort"
	"testing"

	"crm-platform/internal/domain"
	"crm-platform/internal/repository"
	"crm-platform/internal/service"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// In-memory repositories so schema tests execute the full
// resolver -> service -> repository path without a database.

type memCustomerRepo struct {
	rows map[uuid.UUID]*domain.Customer
}

func (m *memCustomerRepo) Create(_ context.Context, c *domain.Customer) error {
	for _, row := range m.rows {
		if row.Email == c.Email {
			return repository.ErrCustomerEmailExists
		}
	}
	m.rows[c.ID] = c
	return nil
}

func (m *memCustomerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, row := range m.rows {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Customer, error) {
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrCustomerNotFound
}

func (m *memCustomerRepo) List(_ context.Context) ([]*domain.Customer, error) {
	rows := []*domain.Customer{}
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

type memProductRepo struct {
	rows map[uuid.UUID]*domain.Product
}

func (m *memProductRepo) Create(_ context.Context, p *domain.Product) error {
	m.rows[p.ID] = p
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	rows := []*domain.Product{}
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (m *memProductRepo) ListByOrderID(_ context.Context, _ uuid.UUID) ([]*domain.Product, error) {
	return nil, nil
}

func (m *memProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	rows := []*domain.Product{}
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

type memOrderRepo struct {
	rows map[uuid.UUID]*domain.Order
}

func (m *memOrderRepo) Create(_ context.Context, o *domain.Order) error {
	m.rows[o.ID] = o
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrOrderNotFound
}

func (m *memOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	rows := []*domain.Order{}
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

type memUserRepo struct {
	rows map[uuid.UUID]*domain.User
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, row := range m.rows {
		if row.Email == u.Email {
			return repository.ErrUserEmailExists
		}
	}
	m.rows[u.ID] = u
	return nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, row := range m.rows {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) List(_ context.Context) ([]*domain.User, error) {
	rows := []*domain.User{}
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

type memConversationRepo struct {
	rows         map[uuid.UUID]*domain.Conversation
	participants map[uuid.UUID][]*domain.User
}

func (m *memConversationRepo) Create(_ context.Context, c *domain.Conversation) error {
	m.rows[c.ID] = c
	m.participants[c.ID] = c.Participants
	return nil
}

func (m *memConversationRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	if row, ok := m.rows[id]; ok {
		return row, nil
	}
	return nil, repository.ErrConversationNotFound
}

func (m *memConversationRepo) List(_ context.Context) ([]*domain.Conversation, error) {
	rows := []*domain.Conversation{}
	for _, row := range m.rows {
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *memConversationRepo) ListParticipants(_ context.Context, id uuid.UUID) ([]*domain.User, error) {
	return m.participants[id], nil
}

func (m *memConversationRepo) IsParticipant(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for _, user := range m.participants[id] {
		if user.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

type memMessageRepo struct {
	rows []*domain.Message
}

func (m *memMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	m.rows = append(m.rows, msg)
	return nil
}

func (m *memMessageRepo) ListByConversation(_ context.Context, id uuid.UUID) ([]*domain.Message, error) {
	rows := []*domain.Message{}
	for _, msg := range m.rows {
		if msg.ConversationID == id {
			rows = append(rows, msg)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SentAt.Before(rows[j].SentAt) })
	return rows, nil
}

func newTestSchema(t *testing.T) graphql.Schema {
	t.Helper()

	customerRepo := &memCustomerRepo{rows: map[uuid.UUID]*domain.Customer{}}
	productRepo := &memProductRepo{rows: map[uuid.UUID]*domain.Product{}}
	orderRepo := &memOrderRepo{rows: map[uuid.UUID]*domain.Order{}}
	userRepo := &memUserRepo{rows: map[uuid.UUID]*domain.User{}}
	conversationRepo := &memConversationRepo{
		rows:         map[uuid.UUID]*domain.Conversation{},
		participants: map[uuid.UUID][]*domain.User{},
	}
	messageRepo := &memMessageRepo{}

	resolver := NewResolver(
		service.NewCustomerService(customerRepo),
		service.NewProductService(productRepo),
		service.NewOrderService(orderRepo, customerRepo, productRepo),
		service.NewChatService(userRepo, conversationRepo, messageRepo),
		zap.NewNop(),
	)

	schema, err := NewSchema(resolver)
	require.NoError(t, err)
	return schema
}

func execute(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
}

func data(t *testing.T, result *graphql.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, result.Errors, "unexpected GraphQL errors: %v", result.Errors)
	m, ok := result.Data.(map[string]interface{})
	require.True(t, ok, "result data is not a map")
	return m
}

func errorKind(t *testing.T, result *graphql.Result) string {
	t.Helper()
	require.NotEmpty(t, result.Errors, "expected a GraphQL error")
	kind, _ := result.Errors[0].Extensions["kind"].(string)
	return kind
}

func TestHelloQuery(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, `{ hello }`, nil)
	require.Equal(t, "Hello, GraphQL!", data(t, result)["hello"])
}

func TestEndToEnd_CustomerProductsOrder(t *testing.T) {
	schema := newTestSchema(t)

	created := execute(t, schema, `
		mutation {
			createCustomer(input: {name: "Alice", email: "alice@example.com", phone: "+1234567890"}) {
				customer { id name email phone }
				message
			}
		}`, nil)
	payload := data(t, created)["createCustomer"].(map[string]interface{})
	require.Equal(t, "Customer created successfully", payload["message"])
	customer := payload["customer"].(map[string]interface{})
	require.Equal(t, "alice@example.com", customer["email"])
	require.Equal(t, "+1234567890", customer["phone"])
	customerID := customer["id"].(string)

	productIDs := []interface{}{}
	for _, p := range []struct {
		name  string
		price string
		stock int
	}{
		{"Laptop", "999.99", 10},
		{"Mouse", "29.99", 50},
	} {
		result := execute(t, schema, `
			mutation ($name: String!, $price: Decimal!, $stock: Int) {
				createProduct(name: $name, price: $price, stock: $stock) {
					product { id name price stock }
				}
			}`, map[string]interface{}{"name": p.name, "price": p.price, "stock": p.stock})
		product := data(t, result)["createProduct"].(map[string]interface{})["product"].(map[string]interface{})
		require.Equal(t, p.price, product["price"])
		require.Equal(t, p.stock, product["stock"])
		productIDs = append(productIDs, product["id"])
	}

	orderResult := execute(t, schema, `
		mutation ($customerId: ID!, $productIds: [ID!]!) {
			createOrder(customerId: $customerId, productIds: $productIds) {
				order {
					totalAmount
					customer { email }
					products { name }
				}
				message
			}
		}`, map[string]interface{}{"customerId": customerID, "productIds": productIDs})
	orderPayload := data(t, orderResult)["createOrder"].(map[string]interface{})
	require.Equal(t, "Order created successfully", orderPayload["message"])
	order := orderPayload["order"].(map[string]interface{})
	require.Equal(t, "1029.98", order["totalAmount"])
	require.Equal(t, "alice@example.com", order["customer"].(map[string]interface{})["email"])
	require.Len(t, order["products"].([]interface{}), 2)

	listResult := execute(t, schema, `{ customers { email } orders { totalAmount } }`, nil)
	listData := data(t, listResult)
	require.Len(t, listData["customers"].([]interface{}), 1)
	require.Len(t, listData["orders"].([]interface{}), 1)
}

func TestCreateCustomer_DuplicateEmailIsHardFailure(t *testing.T) {
	schema := newTestSchema(t)

	mutation := `
		mutation {
			createCustomer(input: {name: "Alice", email: "alice@example.com"}) {
				customer { id }
			}
		}`

	first := execute(t, schema, mutation, nil)
	require.Empty(t, first.Errors)

	second := execute(t, schema, mutation, nil)
	require.Equal(t, "uniqueness", errorKind(t, second))
	require.Contains(t, second.Errors[0].Message, "Email already exists")
}

func TestCreateCustomer_InvalidPhoneKind(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, `
		mutation {
			createCustomer(input: {name: "Bob", email: "bob@example.com", phone: "12345"}) {
				customer { id }
			}
		}`, nil)
	require.Equal(t, "format", errorKind(t, result))
}

func TestBulkCreateCustomers_RowScopedErrors(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, `
		mutation {
			bulkCreateCustomers(input: [
				{name: "Alice", email: "alice@example.com"},
				{name: "Duplicate", email: "alice@example.com"},
				{name: "Bob", email: "bob@example.com"}
			]) {
				customers { email }
				errors
			}
		}`, nil)
	payload := data(t, result)["bulkCreateCustomers"].(map[string]interface{})

	require.Len(t, payload["customers"].([]interface{}), 2)
	errs := payload["errors"].([]interface{})
	require.Len(t, errs, 1)
	require.Equal(t, "Row 2: Email already exists", errs[0])
}

func TestCreateProduct_NegativePriceKind(t *testing.T) {
	schema := newTestSchema(t)

	result := execute(t, schema, `
		mutation ($price: Decimal!) {
			createProduct(name: "Broken", price: $price) {
				product { id }
			}
		}`, map[string]interface{}{"price": "-5.00"})
	require.Equal(t, "range", errorKind(t, result))
	require.Contains(t, result.Errors[0].Message, "Price must be positive")
}

func TestCreateOrder_EmptyProductListKind(t *testing.T) {
	schema := newTestSchema(t)

	created := execute(t, schema, `
		mutation {
			createCustomer(input: {name: "Alice", email: "alice@example.com"}) {
				customer { id }
			}
		}`, nil)
	customerID := data(t, created)["createCustomer"].(map[string]interface{})["customer"].(map[string]interface{})["id"].(string)

	result := execute(t, schema, `
		mutation ($customerId: ID!) {
			createOrder(customerId: $customerId, productIds: []) {
				order { id }
			}
		}`, map[string]interface{}{"customerId": customerID})
	require.Equal(t, "referential", errorKind(t, result))
	require.Contains(t, result.Errors[0].Message, "At least one product is required")
}

func TestCreateOrder_UnknownProductReportsIDs(t *testing.T) {
	schema := newTestSchema(t)

	created := execute(t, schema, `
		mutation {
			createCustomer(input: {name: "Alice", email: "alice@example.com"}) {
				customer { id }
			}
		}`, nil)
	customerID := data(t, created)["createCustomer"].(map[string]interface{})["customer"].(map[string]interface{})["id"].(string)

	missing := uuid.New().String()
	result := execute(t, schema, `
		mutation ($customerId: ID!, $productIds: [ID!]!) {
			createOrder(customerId: $customerId, productIds: $productIds) {
				order { id }
			}
		}`, map[string]interface{}{"customerId": customerID, "productIds": []interface{}{missing}})
	require.Equal(t, "referential", errorKind(t, result))
	require.Contains(t, result.Errors[0].Message, missing)
}

func TestChat_ConversationAndMessages(t *testing.T) {
	schema := newTestSchema(t)

	userIDs := []interface{}{}
	for _, email := range []string{"alice@chat.example.com", "bob@chat.example.com"} {
		result := execute(t, schema, `
			mutation ($email: String!) {
				createChatUser(input: {email: $email, firstName: "Chat", lastName: "User", role: HOST}) {
					user { id role }
					message
				}
			}`, map[string]interface{}{"email": email})
		payload := data(t, result)["createChatUser"].(map[string]interface{})
		require.Equal(t, "User created successfully", payload["message"])
		user := payload["user"].(map[string]interface{})
		require.Equal(t, "HOST", user["role"])
		userIDs = append(userIDs, user["id"])
	}

	convResult := execute(t, schema, `
		mutation ($participantIds: [ID!]!) {
			createConversation(participantIds: $participantIds) {
				conversation { id participants { email } }
			}
		}`, map[string]interface{}{"participantIds": userIDs})
	conversation := data(t, convResult)["createConversation"].(map[string]interface{})["conversation"].(map[string]interface{})
	require.Len(t, conversation["participants"].([]interface{}), 2)
	conversationID := conversation["id"].(string)

	for _, body := range []string{"first", "second"} {
		result := execute(t, schema, `
			mutation ($conversationId: ID!, $senderId: ID!, $body: String!) {
				sendMessage(conversationId: $conversationId, senderId: $senderId, body: $body) {
					message { id body }
				}
			}`, map[string]interface{}{
			"conversationId": conversationID,
			"senderId":       userIDs[0],
			"body":           body,
		})
		require.Empty(t, result.Errors)
	}

	listResult := execute(t, schema, `
		query ($conversationId: ID!) {
			messages(conversationId: $conversationId) {
				body
				sender { email }
			}
		}`, map[string]interface{}{"conversationId": conversationID})
	messages := data(t, listResult)["messages"].([]interface{})
	require.Len(t, messages, 2)
	require.Equal(t, "first", messages[0].(map[string]interface{})["body"])
	require.Equal(t, "second", messages[1].(map[string]interface{})["body"])
}
