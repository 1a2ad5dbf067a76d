package inference

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/domain/service"
)

// LinearSVM is a linear support vector classifier trained offline.
//
// Decision function: score = intercept + sum(weights[i] * x[i])
// The positive label is returned when score > 0.
// Inputs must be standardized with the scaler fitted alongside the model.
type LinearSVM struct {
	weights   []float64
	intercept float64
}

var _ service.Classifier = (*LinearSVM)(nil)

// NewLinearSVM creates a LinearSVM from learned coefficients
func NewLinearSVM(weights []float64, intercept float64) (*LinearSVM, error) {
	if len(weights) == 0 {
		return nil, errors.New("svm has no weights")
	}
	for i, w := range weights {
		if !isFinite(w) {
			return nil, fmt.Errorf("svm weight[%d] is not finite", i)
		}
	}
	if !isFinite(intercept) {
		return nil, errors.New("svm intercept is not finite")
	}

	return &LinearSVM{
		weights:   append([]float64(nil), weights...),
		intercept: intercept,
	}, nil
}

// DecisionFunction returns the signed distance of vector from the hyperplane
func (m *LinearSVM) DecisionFunction(vector []float64) (float64, error) {
	if len(vector) != len(m.weights) {
		return 0, fmt.Errorf("%w: vector has %d values, svm expects %d", ErrDimensionMismatch, len(vector), len(m.weights))
	}
	return floats.Dot(m.weights, vector) + m.intercept, nil
}

// Classify returns 1 when the decision score is positive, otherwise 0
func (m *LinearSVM) Classify(vector []float64) (int, error) {
	score, err := m.DecisionFunction(vector)
	if err != nil {
		return 0, err
	}
	if score > 0 {
		return entity.LabelPositive, nil
	}
	return entity.LabelNegative, nil
}

func (m *LinearSVM) Dimensions() int { return len(m.weights) }

func (m *LinearSVM) RequiresScaling() bool { return true }
