package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
)

// ExtractBackendParam reads the :backend path parameter.
// Unknown ids are passed through; the usecase decides whether they exist.
func ExtractBackendParam(c *gin.Context) entity.BackendID {
	return entity.ParseBackendID(c.Param("backend"))
}

// unknownBackendLabel stands in for any backend id outside the known set
const unknownBackendLabel = "unknown"

// backendLabel bounds a client supplied backend id to a metric label value
func backendLabel(backend entity.BackendID) string {
	switch backend {
	case entity.BackendSVM, entity.BackendDecisionTree:
		return string(backend)
	default:
		return unknownBackendLabel
	}
}

// IsJSONRequest reports whether the request declares a JSON body.
// A missing Content-Type is accepted, matching curl's default usage.
func IsJSONRequest(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == "" || ct == gin.MIMEJSON || strings.HasSuffix(ct, "+json")
}
