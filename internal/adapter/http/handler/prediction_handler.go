package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ressKim-io/CerviGuard/internal/infrastructure/metrics"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

// PredictionHandler handles prediction endpoints
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewPredictionHandler creates a new prediction handler.
// m may be nil when metrics are not collected.
func NewPredictionHandler(predictionUC usecase.PredictionUsecase, m *metrics.Metrics, logger *zap.Logger) *PredictionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictionHandler{
		predictionUC: predictionUC,
		metrics:      m,
		logger:       logger,
	}
}

// Root handles GET /
func (h *PredictionHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "API is running successfully"})
}

// Predict handles POST /api/v1/predict/:backend
func (h *PredictionHandler) Predict(c *gin.Context) {
	backend := ExtractBackendParam(c)
	label := backendLabel(backend)

	if !IsJSONRequest(c) {
		h.metrics.ObserveRejection(label, CodeInvalidRequest)
		HandleInvalidRequest(c, "content type must be application/json")
		return
	}

	var input usecase.PredictInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.metrics.ObserveRejection(label, CodeInvalidRequest)
		HandleInvalidRequest(c, "request body must be an object with a \"data\" field")
		return
	}

	start := time.Now()
	output, err := h.predictionUC.Predict(c.Request.Context(), backend, input.Data)
	if err != nil {
		errResp := HandlePredictionError(c, err)
		h.metrics.ObserveRejection(label, errResp.Code)
		if errResp.StatusCode >= http.StatusInternalServerError {
			h.logger.Error("Prediction failed",
				zap.String("request_id", c.GetString("request_id")),
				zap.String("backend", string(backend)),
				zap.Error(err),
			)
		}
		return
	}
	h.metrics.ObservePrediction(output.Backend, output.Prediction, time.Since(start))

	respondSuccess(c, http.StatusOK, output)
}

// ListBackends handles GET /api/v1/backends
func (h *PredictionHandler) ListBackends(c *gin.Context) {
	respondSuccess(c, http.StatusOK, h.predictionUC.Backends(c.Request.Context()))
}

// GetBackend handles GET /api/v1/backends/:backend
func (h *PredictionHandler) GetBackend(c *gin.Context) {
	output, err := h.predictionUC.Backend(c.Request.Context(), ExtractBackendParam(c))
	if err != nil {
		HandlePredictionError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, output)
}
