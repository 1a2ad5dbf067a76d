package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
)

func TestExtractBackendParam(t *testing.T) {
	tests := []struct {
		path     string
		expected entity.BackendID
	}{
		{"/predict/svm", entity.BackendSVM},
		{"/predict/dt", entity.BackendDecisionTree},
		{"/predict/SVM", entity.BackendSVM},
		{"/predict/rf", entity.BackendID("rf")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var got entity.BackendID
			router := gin.New()
			router.GET("/predict/:backend", func(c *gin.Context) {
				got = ExtractBackendParam(c)
				c.Status(http.StatusOK)
			})

			req, _ := http.NewRequest("GET", tt.path, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsJSONRequest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{"no content type", "", true},
		{"application json", "application/json", true},
		{"json with charset", "application/json; charset=utf-8", true},
		{"vendor json", "application/vnd.api+json", true},
		{"form", "application/x-www-form-urlencoded", false},
		{"plain text", "text/plain", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("POST", "/predict/svm", nil)
			if tt.contentType != "" {
				c.Request.Header.Set("Content-Type", tt.contentType)
			}

			assert.Equal(t, tt.expected, IsJSONRequest(c))
		})
	}
}

func TestBackendLabel(t *testing.T) {
	tests := []struct {
		backend  entity.BackendID
		expected string
	}{
		{entity.BackendSVM, "svm"},
		{entity.BackendDecisionTree, "dt"},
		{entity.BackendID("rf"), "unknown"},
		{entity.BackendID(""), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected+"/"+string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, backendLabel(tt.backend))
		})
	}
}
