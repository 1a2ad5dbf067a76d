package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ressKim-io/CerviGuard/internal/inference"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

func TestMapPredictionError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
		expectedDetails    []string
	}{
		{
			name:               "missing features",
			err:                &inference.FeatureError{Kind: inference.ErrMissingFeature, Features: []string{"Smokes", "Dx"}},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "MISSING_FEATURE",
			expectedMessage:    "missing features",
			expectedDetails:    []string{"Smokes", "Dx"},
		},
		{
			name:               "invalid value",
			err:                &inference.FeatureError{Kind: inference.ErrInvalidValue, Features: []string{"IUD"}},
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_VALUE",
			expectedMessage:    "feature values must be 0 or 1",
			expectedDetails:    []string{"IUD"},
		},
		{
			name:               "unknown backend",
			err:                fmt.Errorf("%w: %q", usecase.ErrUnknownBackend, "rf"),
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       "UNKNOWN_BACKEND",
			expectedMessage:    "unknown backend",
		},
		{
			name:               "dimension mismatch",
			err:                fmt.Errorf("%w: vector has 9 values, model expects 10", inference.ErrDimensionMismatch),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "DIMENSION_MISMATCH",
			expectedMessage:    "model bundle is inconsistent",
		},
		{
			name:               "unknown error",
			err:                errors.New("some unknown error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "INTERNAL_ERROR",
			expectedMessage:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapPredictionError(tt.err)

			assert.Equal(t, tt.expectedStatusCode, result.StatusCode)
			assert.Equal(t, tt.expectedCode, result.Code)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.expectedDetails, result.Details)
		})
	}
}

func TestHandlePredictionError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedErrors     int
	}{
		{
			name:               "missing feature",
			err:                &inference.FeatureError{Kind: inference.ErrMissingFeature, Features: []string{"STDs"}},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "internal error is attached to the context",
			err:                errors.New("internal"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedErrors:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandlePredictionError(c, tt.err)

			assert.Equal(t, tt.expectedStatusCode, w.Code)
			assert.Len(t, c.Errors, tt.expectedErrors)
		})
	}
}

func TestHandleInvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleInvalidRequest(c, "missing required field")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required field")
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}
