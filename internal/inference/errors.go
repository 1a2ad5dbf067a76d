package inference

import (
	"errors"
	"fmt"
	"strings"
)

// Error definitions for the inference core
var (
	ErrMissingFeature    = errors.New("missing feature")
	ErrInvalidValue      = errors.New("invalid feature value")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrArtifactLoad      = errors.New("artifact load failure")
)

// FeatureError reports which features of an answer set failed validation.
// Kind is ErrMissingFeature or ErrInvalidValue.
type FeatureError struct {
	Kind     error
	Features []string
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(e.Features, ", "))
}

func (e *FeatureError) Unwrap() error {
	return e.Kind
}
