package inference

import (
	"errors"
	"fmt"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/domain/service"
)

// Bundle holds everything one backend needs to turn answers into a label:
// the trained classifier, the feature order it was trained with and, for
// models that need it, the fitted scaler.
//
// A Bundle has no mutators. It is built once at startup and shared by all
// requests without locking.
type Bundle struct {
	backend    entity.BackendID
	order      []string
	classifier service.Classifier
	scaler     *Scaler
}

// NewBundle checks that the parts agree on dimensionality and creates a Bundle
func NewBundle(backend entity.BackendID, order []string, classifier service.Classifier, scaler *Scaler) (*Bundle, error) {
	if backend == "" {
		return nil, errors.New("bundle backend is required")
	}
	if classifier == nil {
		return nil, errors.New("bundle classifier is required")
	}
	if len(order) == 0 {
		return nil, errors.New("bundle feature order is empty")
	}

	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if name == "" {
			return nil, errors.New("bundle feature order contains an empty name")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("bundle feature order lists %q twice", name)
		}
		seen[name] = struct{}{}
	}

	if classifier.Dimensions() != len(order) {
		return nil, fmt.Errorf("%w: %d features in order, classifier expects %d", ErrDimensionMismatch, len(order), classifier.Dimensions())
	}
	if classifier.RequiresScaling() && scaler == nil {
		return nil, fmt.Errorf("backend %s requires a scaler", backend)
	}
	if scaler != nil && scaler.Dimensions() != len(order) {
		return nil, fmt.Errorf("%w: %d features in order, scaler expects %d", ErrDimensionMismatch, len(order), scaler.Dimensions())
	}

	return &Bundle{
		backend:    backend,
		order:      append([]string(nil), order...),
		classifier: classifier,
		scaler:     scaler,
	}, nil
}

// Backend returns the identifier the bundle is served under
func (b *Bundle) Backend() entity.BackendID { return b.backend }

// FeatureOrder returns a copy of the positional contract of the classifier
func (b *Bundle) FeatureOrder() []string {
	return append([]string(nil), b.order...)
}

// Classifier returns the backend evaluator
func (b *Bundle) Classifier() service.Classifier { return b.classifier }

// Scaler returns the fitted scaler, or nil when the backend takes raw vectors
func (b *Bundle) Scaler() *Scaler { return b.scaler }

// RequiresScaling reports whether vectors go through the scaler before classification
func (b *Bundle) RequiresScaling() bool {
	return b.classifier.RequiresScaling()
}

// Vectorize lays out answers in this bundle's feature order
func (b *Bundle) Vectorize(answers entity.Answers) ([]float64, error) {
	return Vectorize(answers, b.order)
}
