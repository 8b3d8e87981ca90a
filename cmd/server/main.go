package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/speedyy/marketplace/internal"
	"github.com/speedyy/marketplace/internal/events"
	"github.com/speedyy/marketplace/internal/handler/api"
	"github.com/speedyy/marketplace/internal/middleware"
	"github.com/speedyy/marketplace/internal/payments"
	"github.com/speedyy/marketplace/internal/postgres"
	"github.com/speedyy/marketplace/internal/router"
	"github.com/speedyy/marketplace/internal/service"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := postgres.NewRepository(pool)

	// Initialize event publisher
	logger.Info("Connecting to NATS...", "url", cfg.NatsUrl)
	var publisher events.Publisher
	natsPublisher, err := events.NewNATSPublisher(cfg.NatsUrl, logger)
	if err != nil {
		logger.Warn("NATS unavailable, order events will not be published", "error", err)
		publisher = events.NopPublisher{}
	} else {
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("NATS connection established")
	}

	// Initialize payment provider
	var paymentProvider payments.Provider
	if cfg.Stripe.SecretKey != "" {
		paymentProvider = payments.NewStripeProvider(cfg.Stripe.SecretKey)
		logger.Info("Stripe payment provider initialized")
	} else {
		paymentProvider = payments.NewMockProvider()
		logger.Warn("STRIPE_SECRET_KEY not set, using mock payment provider")
	}

	// Initialize order service
	orderService := service.NewOrderService(repo, paymentProvider, publisher, logger)

	// Initialize metrics
	metrics := middleware.NewMetrics("speedyy")

	// Build router with global middleware
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
		metrics.Middleware,
	)

	orderHandler := api.NewOrderHandler(orderService, logger)
	orderHandler.Register(r)

	r.Handle(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
