package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ressKim-io/CerviGuard/internal/adapter/http/handler"
	"github.com/ressKim-io/CerviGuard/internal/adapter/http/middleware"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/metrics"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/ratelimit"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

// Options carries the optional collaborators of the router
type Options struct {
	// Redis is pinged by the health endpoint when set
	Redis *redis.Client
	// Limiter throttles prediction routes when set
	Limiter ratelimit.Limiter
	// Metrics records prediction outcomes when set
	Metrics *metrics.Metrics
	// AllowedOrigins for CORS; empty allows all
	AllowedOrigins []string
}

// Setup creates and configures the Gin router
func Setup(predictionUC usecase.PredictionUsecase, opts Options, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins...))

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(predictionUC, opts.Redis)
	predictionHandler := handler.NewPredictionHandler(predictionUC, opts.Metrics, logger)

	// Health endpoints
	router.GET("/", predictionHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	predictChain := []gin.HandlerFunc{predictionHandler.Predict}
	if opts.Limiter != nil {
		predictChain = append([]gin.HandlerFunc{middleware.RateLimit(opts.Limiter, logger)}, predictChain...)
	}

	// Short prediction path, same handler and envelope as /api/v1
	router.POST("/predict/:backend", predictChain...)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/backends", predictionHandler.ListBackends)
		v1.GET("/backends/:backend", predictionHandler.GetBackend)
		v1.POST("/predict/:backend", predictChain...)
	}

	return router
}
