package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/StoneLedger/crusher_books_app/internal/adapters/cache"
	"github.com/StoneLedger/crusher_books_app/internal/adapters/database/pgsql"
	"github.com/StoneLedger/crusher_books_app/internal/adapters/render"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	"github.com/StoneLedger/crusher_books_app/internal/core/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/StoneLedger/crusher_books_app/internal/handlers"
	"github.com/StoneLedger/crusher_books_app/internal/middleware"
	"github.com/StoneLedger/crusher_books_app/internal/utils"
	"github.com/StoneLedger/crusher_books_app/pkg/config"
	"github.com/StoneLedger/crusher_books_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Crusher Books API
// @version 1.0
// @description Bookkeeping backend for stone crusher businesses.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	// The download token store is in-memory by default; configuring
	// REDIS_URL makes issued links redeemable by any instance.
	tokenStore := newTokenStore(cfg, logger)

	// Analytics client is optional; a missing key disables tracking.
	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, tokenStore, render.NewRenderer(), cfg)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterCustomValidations()

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.PosthogMiddleware(posthogClient))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newTokenStore picks the download token store backend from config.
func newTokenStore(cfg *config.Config, logger *slog.Logger) portsrepo.ReportTokenStore {
	if cfg.RedisURL == "" {
		logger.Info("Using in-memory download token store")
		return cache.NewMemoryTokenStore()
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("Invalid REDIS_URL, falling back to in-memory token store",
			slog.String("error", err.Error()))
		return cache.NewMemoryTokenStore()
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Error("Redis unreachable, falling back to in-memory token store",
			slog.String("error", err.Error()))
		return cache.NewMemoryTokenStore()
	}

	logger.Info("Using Redis download token store")
	return cache.NewRedisTokenStore(client)
}

// runMigrations applies all pending up migrations before the server starts.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
