package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	predictionUC usecase.PredictionUsecase
	redis        *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(predictionUC usecase.PredictionUsecase, redis *redis.Client) *HealthHandler {
	return &HealthHandler{
		predictionUC: predictionUC,
		redis:        redis,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	healthy := true

	// Check models
	if h.modelsLoaded(ctx) {
		components["models"] = "ok"
	} else {
		components["models"] = "not loaded"
		healthy = false
	}

	// Check Redis
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			components["redis"] = "error: " + err.Error()
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "not configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
	})
}

// Ready handles GET /ready.
// Redis is optional for serving, so only the models gate readiness.
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.modelsLoaded(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "models not loaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) modelsLoaded(ctx context.Context) bool {
	return h.predictionUC != nil && len(h.predictionUC.Backends(ctx)) > 0
}
