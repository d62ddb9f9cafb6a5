package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"crm-platform/internal/config"
	"crm-platform/internal/database"
	custommiddleware "crm-platform/internal/middleware"
	"crm-platform/internal/repository"
	"crm-platform/internal/service"
	"crm-platform/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config    *config.Config
	logger    *zap.Logger
	dbService *database.Service
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := dbService.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(health)
	})

	db := dbService.DB()

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, productRepo)
	chatService := service.NewChatService(userRepo, conversationRepo, messageRepo)

	// Build the GraphQL schema and mount it
	resolver := transport.NewResolver(customerService, productService, orderService, chatService, logger)
	schema, err := transport.NewSchema(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
	}
	transport.Mount(router, schema, cfg.Server.Env, logger)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:    cfg,
		logger:    logger,
		dbService: dbService,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
