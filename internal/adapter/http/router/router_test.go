package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/infrastructure/artifact"
	"github.com/ressKim-io/CerviGuard/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

func loadUsecase(t *testing.T) usecase.PredictionUsecase {
	t.Helper()
	loader := artifact.NewLoader(artifact.NewFileSource("../../../infrastructure/artifact/testdata/model_store"), zap.NewNop())
	bundles, err := loader.LoadAll(context.Background())
	require.NoError(t, err)
	return usecase.NewPredictionUsecase(bundles...)
}

func answers(v int) map[string]any {
	m := map[string]any{}
	for _, name := range entity.FeatureNames() {
		m[string(name)] = v
	}
	return m
}

func predict(router *gin.Engine, path string, data map[string]any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]any{"data": data})
	req, _ := http.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetup_Predict(t *testing.T) {
	router := Setup(loadUsecase(t), Options{}, zap.NewNop())

	tests := []struct {
		name           string
		path           string
		data           map[string]any
		expectedStatus int
		expectedBody   string
	}{
		{"svm all zero", "/predict/svm", answers(0), http.StatusOK, `"prediction":0`},
		{"svm all one", "/api/v1/predict/svm", answers(1), http.StatusOK, `"prediction":1`},
		{"dt all zero", "/predict/dt", answers(0), http.StatusOK, `"model":"Decision Tree"`},
		{"dt all one", "/api/v1/predict/dt", answers(1), http.StatusOK, `"prediction":1`},
		{"missing answers", "/predict/svm", map[string]any{"Smokes": 1}, http.StatusBadRequest, "MISSING_FEATURE"},
		{"unknown backend", "/predict/rf", answers(0), http.StatusNotFound, "UNKNOWN_BACKEND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := predict(router, tt.path, tt.data)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestSetup_Endpoints(t *testing.T) {
	router := Setup(loadUsecase(t), Options{}, zap.NewNop())

	for _, path := range []string{"/", "/health", "/ready", "/metrics", "/api/v1/backends", "/api/v1/backends/dt"} {
		t.Run(path, func(t *testing.T) {
			req, _ := http.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestSetup_RateLimit(t *testing.T) {
	router := Setup(loadUsecase(t), Options{Limiter: denyAll{}}, zap.NewNop())

	t.Run("prediction routes are limited", func(t *testing.T) {
		w := predict(router, "/api/v1/predict/svm", answers(0))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("health routes are not limited", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
