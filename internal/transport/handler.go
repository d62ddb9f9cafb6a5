package transport

import (
	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"go.uber.org/zap"
)

// Mount attaches the GraphQL endpoint to the router. GraphiQL is served on
// the same path outside production.
func Mount(router chi.Router, schema graphql.Schema, env string, logger *zap.Logger) {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: env != "production",
	})

	router.Handle("/graphql", h)
	logger.Info("GraphQL endpoint mounted",
		zap.String("path", "/graphql"),
		zap.Bool("graphiql", env != "production"),
	)
}
