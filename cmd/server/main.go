package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"foodstore/internal"
	"foodstore/internal/bootstrap"
	"foodstore/internal/cookie"
	"foodstore/internal/domain"
	"foodstore/internal/email"
	"foodstore/internal/handler/admin"
	"foodstore/internal/handler/api"
	"foodstore/internal/jobs"
	"foodstore/internal/middleware"
	"foodstore/internal/repository"
	"foodstore/internal/router"
	"foodstore/internal/routes"
	"foodstore/internal/service"
	"foodstore/internal/storage"
	"foodstore/internal/telemetry"
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

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:         cfg.Sentry.DSN,
		Enabled:     cfg.Sentry.Enabled,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
		SampleRate:  cfg.Sentry.SampleRate,
		Debug:       cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

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

	// Initialize store
	store := repository.NewStore(pool)

	// Seed the initial admin account
	if err := bootstrap.EnsureAdmin(ctx, store, cfg.Admin, logger); err != nil {
		return fmt.Errorf("admin bootstrap failed: %w", err)
	}

	// Initialize image storage
	files, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize email sender (optional)
	var mailer email.Sender
	if cfg.Email.Enabled {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     int(cfg.Email.Port),
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			FromName: cfg.Email.FromName,
		}, logger)
	}

	// Initialize services
	var catalogService domain.CatalogService = service.NewCatalogService(store)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
		ttl := time.Duration(cfg.Redis.TTLSecs) * time.Second
		catalogService = service.NewCachedCatalogService(catalogService, rdb, ttl, logger)
		logger.Info("Catalog cache enabled", "addr", cfg.Redis.Addr, "ttl", ttl)
	}

	cartService := service.NewCartService(store)
	customerService := service.NewCustomerService(store, mailer, logger)

	// Sweep expired sessions in the background
	cleaner := jobs.NewSessionCleaner(store, jobs.DefaultCleanupInterval, logger)
	go cleaner.Run(ctx)

	// Initialize metrics
	metrics := middleware.NewMetrics("foodstore")
	telemetry.InitBusinessMetrics("foodstore")

	// Build route dependencies
	cookies := cookie.NewConfig(cfg.Env == "prod")

	apiDeps := routes.APIDeps{
		CatalogHandler: api.NewCatalogHandler(catalogService),
		CartHandler:    api.NewCartHandler(cartService),
		AuthHandler:    api.NewAuthHandler(customerService, cookies),
		HealthHandler:  api.NewHealthHandler(pool),
		CartService:    cartService,
	}
	adminDeps := routes.AdminDeps{
		CatalogHandler: admin.NewCatalogHandler(catalogService, files),
	}

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		telemetry.SentryMiddleware(),
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithCustomer(customerService),
		middleware.WithRequestLogger(logger),
	)

	// Stored images when local storage is used
	if cfg.Storage.Provider == "local" || cfg.Storage.Provider == "" {
		r.Static(cfg.Storage.LocalURL+"/", cfg.Storage.LocalPath)
	}

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	routes.RegisterAPIRoutes(r, apiDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

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
