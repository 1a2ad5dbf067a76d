package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/inference"
)

// ErrUnknownBackend is returned when no bundle is loaded for the requested backend
var ErrUnknownBackend = errors.New("unknown backend")

// PredictInput represents the body of a prediction request
type PredictInput struct {
	Data entity.Answers `json:"data" binding:"required"`
}

// PredictionOutput represents the verdict returned to clients
type PredictionOutput struct {
	Backend    string `json:"backend"`
	Model      string `json:"model"`
	Prediction int    `json:"prediction"`
}

// BackendOutput describes a loaded backend and the questions it needs
type BackendOutput struct {
	Backend  string   `json:"backend"`
	Model    string   `json:"model"`
	Features []string `json:"features"`
	Scaled   bool     `json:"scaled"`
}

// PredictionUsecase defines the interface for risk prediction
type PredictionUsecase interface {
	Predict(ctx context.Context, backend entity.BackendID, answers entity.Answers) (*PredictionOutput, error)
	Backends(ctx context.Context) []*BackendOutput
	Backend(ctx context.Context, backend entity.BackendID) (*BackendOutput, error)
}

type predictionUsecase struct {
	bundles map[entity.BackendID]*inference.Bundle
}

// NewPredictionUsecase creates a new prediction usecase over preloaded bundles.
// Nil bundles are skipped; a later bundle for the same backend replaces an earlier one.
func NewPredictionUsecase(bundles ...*inference.Bundle) PredictionUsecase {
	m := make(map[entity.BackendID]*inference.Bundle, len(bundles))
	for _, b := range bundles {
		if b == nil {
			continue
		}
		m[b.Backend()] = b
	}
	return &predictionUsecase{bundles: m}
}

func (u *predictionUsecase) Predict(ctx context.Context, backend entity.BackendID, answers entity.Answers) (*PredictionOutput, error) {
	bundle, ok := u.bundles[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}

	vector, err := bundle.Vectorize(answers)
	if err != nil {
		return nil, err
	}

	if bundle.RequiresScaling() {
		vector, err = bundle.Scaler().Scale(vector)
		if err != nil {
			return nil, err
		}
	}

	label, err := bundle.Classifier().Classify(vector)
	if err != nil {
		return nil, err
	}

	return toPredictionOutput(entity.NewPrediction(backend, label)), nil
}

func (u *predictionUsecase) Backends(ctx context.Context) []*BackendOutput {
	outputs := make([]*BackendOutput, 0, len(u.bundles))
	for _, b := range u.bundles {
		outputs = append(outputs, toBackendOutput(b))
	}
	sort.Slice(outputs, func(i, j int) bool {
		return outputs[i].Backend < outputs[j].Backend
	})
	return outputs
}

func (u *predictionUsecase) Backend(ctx context.Context, backend entity.BackendID) (*BackendOutput, error) {
	bundle, ok := u.bundles[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return toBackendOutput(bundle), nil
}

func toPredictionOutput(p *entity.Prediction) *PredictionOutput {
	return &PredictionOutput{
		Backend:    string(p.Backend),
		Model:      p.Backend.DisplayName(),
		Prediction: p.Label,
	}
}

func toBackendOutput(b *inference.Bundle) *BackendOutput {
	return &BackendOutput{
		Backend:  string(b.Backend()),
		Model:    b.Backend().DisplayName(),
		Features: b.FeatureOrder(),
		Scaled:   b.RequiresScaling(),
	}
}
