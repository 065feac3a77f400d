package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/core/services"
	"github.com/omarrayoubb/gateway-sub003/internal/dto"
	"github.com/omarrayoubb/gateway-sub003/internal/handlers"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
	"github.com/omarrayoubb/gateway-sub003/internal/platform/config"
	"github.com/omarrayoubb/gateway-sub003/internal/platform/lock"
	"github.com/omarrayoubb/gateway-sub003/internal/repositories/database/memory"
	"github.com/omarrayoubb/gateway-sub003/internal/repositories/database/pgsql"
	"github.com/omarrayoubb/gateway-sub003/pkg/database"
	"github.com/redis/go-redis/v9"
)

// @title Ledger Backend API
// @version 1.0
// @description Double-entry ledger engine: journal entries, posting, general ledger projection and reports.

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

	ctx := context.Background()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	// Redis is optional: it backs the posting lock and shared rate-limit counters.
	var redisClient *redis.Client
	var locker portssvc.EntryLocker
	if cfg.RedisAddress != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.CloseRedisClient(redisClient)
		locker = lock.NewRedisLocker(redisClient, cfg.PostingLockTTL)
		logger.Info("Posting lock enabled", slog.Duration("ttl", cfg.PostingLockTTL))
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, locker)
	dto.RegisterValidators()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.IsProduction, cfg.CORSAllowedOrigins),
		middleware.RateLimit(rateLimiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("storage", cfg.StorageDriver),
		slog.Bool("strict_sync", cfg.LedgerStrictSync))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupStorage returns the repositories of the configured driver and a cleanup function.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repositories.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return repositories.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}
