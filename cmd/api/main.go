package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ressKim-io/CerviGuard/internal/adapter/http/router"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/artifact"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/cache"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/config"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/logger"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/metrics"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/ratelimit"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load model bundles; the service does not start without them
	ctx := context.Background()
	predictionUC, err := loadModels(ctx, &cfg.Models, log)
	if err != nil {
		log.Error("Failed to load models", zap.Error(err))
		return err
	}

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without it", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis", zap.String("address", cfg.Redis.Addr()))
		}
	}

	// Rate limiting
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.New(&cfg.RateLimit, redisClient, log)
		if err != nil {
			return fmt.Errorf("failed to create rate limiter: %w", err)
		}
	}

	// Prometheus collectors
	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Setup router
	r := router.Setup(predictionUC, router.Options{
		Redis:          redisClient,
		Limiter:        limiter,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}

// loadModels reads both bundles from the configured source
func loadModels(ctx context.Context, cfg *config.ModelsConfig, log *zap.Logger) (usecase.PredictionUsecase, error) {
	src, err := artifact.NewSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open model source: %w", err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	bundles, err := artifact.NewLoader(src, log).LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewPredictionUsecase(bundles...), nil
}
