package transport

import (
	"crm-platform/internal/domain"
	"crm-platform/internal/service"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Resolver holds the services behind the GraphQL schema
type Resolver struct {
	customers service.CustomerService
	products  service.ProductService
	orders    service.OrderService
	chat      service.ChatService
	logger    *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(
	customers service.CustomerService,
	products service.ProductService,
	orders service.OrderService,
	chat service.ChatService,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		customers: customers,
		products:  products,
		orders:    orders,
		chat:      chat,
		logger:    logger,
	}
}

// NewSchema builds the typed query/mutation schema. All operations go
// through the one schema served at /graphql.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":        idField(func(src interface{}) string { return src.(*domain.Customer).ID.String() }),
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":        idField(func(src interface{}) string { return src.(*domain.Product).ID.String() }),
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": idField(func(src interface{}) string { return src.(*domain.Order).ID.String() }),
			"customer": &graphql.Field{
				Type:    graphql.NewNonNull(customerType),
				Resolve: r.resolveOrderCustomer,
			},
			"products": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: r.resolveOrderProducts,
			},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	roleType := graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			"GUEST": &graphql.EnumValueConfig{Value: domain.RoleGuest},
			"HOST":  &graphql.EnumValueConfig{Value: domain.RoleHost},
			"ADMIN": &graphql.EnumValueConfig{Value: domain.RoleAdmin},
		},
	})

	chatUserType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ChatUser",
		Fields: graphql.Fields{
			"id":          idField(func(src interface{}) string { return src.(*domain.User).ID.String() }),
			"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"firstName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber": &graphql.Field{Type: graphql.String},
			"role":        &graphql.Field{Type: graphql.NewNonNull(roleType)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	messageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"id": idField(func(src interface{}) string { return src.(*domain.Message).ID.String() }),
			"sender": &graphql.Field{
				Type:    graphql.NewNonNull(chatUserType),
				Resolve: r.resolveMessageSender,
			},
			"conversationId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*domain.Message).ConversationID.String(), nil
				},
			},
			"body":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"sentAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	conversationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Conversation",
		Fields: graphql.Fields{
			"id": idField(func(src interface{}) string { return src.(*domain.Conversation).ID.String() }),
			"participants": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(chatUserType))),
				Resolve: r.resolveConversationParticipants,
			},
			"messages": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(messageType))),
				Resolve: r.resolveConversationMessages,
			},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	customerInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	chatUserInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ChatUserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"firstName":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lastName":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role":        &graphql.InputObjectFieldConfig{Type: roleType},
		},
	})

	createCustomerPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: customerType},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})

	bulkCreateCustomersPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType)))},
			"errors":    &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		},
	})

	createProductPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: productType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	createOrderPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order":   &graphql.Field{Type: orderType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	createChatUserPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateChatUserPayload",
		Fields: graphql.Fields{
			"user":    &graphql.Field{Type: chatUserType},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	createConversationPayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateConversationPayload",
		Fields: graphql.Fields{
			"conversation": &graphql.Field{Type: conversationType},
			"message":      &graphql.Field{Type: graphql.String},
		},
	})

	sendMessagePayload := graphql.NewObject(graphql.ObjectConfig{
		Name: "SendMessagePayload",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: messageType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, GraphQL!", nil
				},
			},
			"customers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType))),
				Resolve: r.listCustomers,
			},
			"products": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: r.listProducts,
			},
			"orders": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Resolve: r.listOrders,
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(chatUserType))),
				Resolve: r.listUsers,
			},
			"conversations": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(conversationType))),
				Resolve: r.listConversations,
			},
			"messages": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(messageType))),
				Args: graphql.FieldConfigArgument{
					"conversationId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.listMessages,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInputType)},
				},
				Resolve: r.createCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type:        bulkCreateCustomersPayload,
				Description: "Creates customers row by row (best-effort): a failing row is reported as \"Row N: <reason>\" and never rolls back its siblings.",
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInputType)))},
				},
				Resolve: r.bulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type: createProductPayload,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"price": &graphql.ArgumentConfig{Type: graphql.NewNonNull(decimalType)},
					"stock": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.createProduct,
			},
			"createOrder": &graphql.Field{
				Type: createOrderPayload,
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"productIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
					"orderDate":  &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: r.createOrder,
			},
			"createChatUser": &graphql.Field{
				Type: createChatUserPayload,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(chatUserInputType)},
				},
				Resolve: r.createChatUser,
			},
			"createConversation": &graphql.Field{
				Type: createConversationPayload,
				Args: graphql.FieldConfigArgument{
					"participantIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
				},
				Resolve: r.createConversation,
			},
			"sendMessage": &graphql.Field{
				Type: sendMessagePayload,
				Args: graphql.FieldConfigArgument{
					"conversationId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"senderId":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"body":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.sendMessage,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// idField builds a non-null ID field that serializes a UUID to its string form
func idField(extract func(src interface{}) string) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.ID),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return extract(p.Source), nil
		},
	}
}
