package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/CerviGuard/internal/inference"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

// Error codes returned in the response envelope
const (
	CodeMissingFeature    = "MISSING_FEATURE"
	CodeInvalidValue      = "INVALID_VALUE"
	CodeUnknownBackend    = "UNKNOWN_BACKEND"
	CodeDimensionMismatch = "DIMENSION_MISMATCH"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

// MapPredictionError maps prediction errors to HTTP error responses.
// Feature errors carry the offending feature names as details.
func MapPredictionError(err error) ErrorResponse {
	var details []string
	var featureErr *inference.FeatureError
	if errors.As(err, &featureErr) {
		details = featureErr.Features
	}

	switch {
	case errors.Is(err, inference.ErrMissingFeature):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeMissingFeature,
			Message:    "missing features",
			Details:    details,
		}
	case errors.Is(err, inference.ErrInvalidValue):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidValue,
			Message:    "feature values must be 0 or 1",
			Details:    details,
		}
	case errors.Is(err, usecase.ErrUnknownBackend):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       CodeUnknownBackend,
			Message:    "unknown backend",
		}
	case errors.Is(err, inference.ErrDimensionMismatch):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeDimensionMismatch,
			Message:    "model bundle is inconsistent",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    "internal server error",
		}
	}
}

// HandlePredictionError sends the mapped error response
func HandlePredictionError(c *gin.Context, err error) ErrorResponse {
	errResp := MapPredictionError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message, errResp.Details...)
	return errResp
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}
