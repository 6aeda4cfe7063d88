package server

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"storedesk/internal/cart"
	"storedesk/internal/config"
	"storedesk/internal/fakestore"
	custommiddleware "storedesk/internal/middleware"
	"storedesk/internal/service"
	"storedesk/internal/store"
	"storedesk/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client

	Catalog   *store.Catalog
	Directory *store.Directory
}

func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Pick the upstream client
	var client fakestore.Client
	if cfg.Upstream.Mode == "simulated" {
		client = fakestore.NewSimulator(fakestore.SimulatorConfig{
			Latency:    cfg.Upstream.SimLatency,
			CreateFail: cfg.Upstream.SimFailRate,
			UpdateFail: cfg.Upstream.SimFailRate,
			DeleteFail: cfg.Upstream.SimFailRate,
			Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		})
		logger.Info("Using simulated directory service",
			zap.Duration("latency", cfg.Upstream.SimLatency),
			zap.Float64("fail_rate", cfg.Upstream.SimFailRate),
		)
	} else {
		client = fakestore.NewHTTPClient(cfg.Upstream.BaseURL, cfg.Upstream.Token, cfg.Upstream.Timeout)
	}

	// One store instance per application lifetime
	catalog := store.NewCatalog(client, logger)
	directory := store.NewDirectory(client, logger)

	// Carts and sessions
	registry := cart.NewRegistry()
	sessions := service.NewSessionService(cfg.JWT.Secret)

	// Optional Redis-backed rate limiting on the auth routes
	var redisClient *redis.Client
	var rateLimit func(http.Handler) http.Handler
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rateLimit = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "rate_limit:auth",
		}, logger)
	}

	sessionMiddleware := custommiddleware.SessionMiddleware(cfg.JWT.Secret, logger)

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(catalog, client, logger)
	directoryHandler := transport.NewDirectoryHandler(directory, client, logger)
	cartHandler := transport.NewCartHandler(registry, catalog, client, logger)
	sessionHandler := transport.NewSessionHandler(sessions, logger)

	// Register routes
	sessionHandler.RegisterRoutes(router, rateLimit)
	catalogHandler.RegisterRoutes(router, sessionMiddleware)
	directoryHandler.RegisterRoutes(router, sessionMiddleware)
	cartHandler.RegisterRoutes(router)

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
		redis:     redisClient,
		Catalog:   catalog,
		Directory: directory,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
