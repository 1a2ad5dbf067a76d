package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/inference"
)

// Artifact names relative to the source root
const (
	SVMModelFile    = "svm/model.json"
	SVMScalerFile   = "svm/scaler.json"
	SVMFeaturesFile = "svm/features.json"
	DTModelFile     = "dt/model.json"
	DTFeaturesFile  = "dt/features.json"
)

// Model kinds written by the offline exporter
const (
	KindLinearSVM    = "linear_svm"
	KindDecisionTree = "decision_tree"
)

type svmArtifact struct {
	Kind      string    `json:"kind"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

type treeArtifact struct {
	Kind      string               `json:"kind"`
	NFeatures int                  `json:"n_features"`
	Nodes     []inference.TreeNode `json:"nodes"`
}

// Loader builds model bundles from a Source. It is used once at startup.
type Loader struct {
	source Source
	logger *zap.Logger
}

// NewLoader creates a new Loader
func NewLoader(source Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, logger: logger}
}

// LoadAll loads the SVM and decision tree bundles concurrently.
// Any failure aborts the load; the error wraps inference.ErrArtifactLoad.
func (l *Loader) LoadAll(ctx context.Context) ([]*inference.Bundle, error) {
	var svm, dt *inference.Bundle

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := l.LoadSVM(gctx)
		svm = b
		return err
	})
	g.Go(func() error {
		b, err := l.LoadDecisionTree(gctx)
		dt = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return []*inference.Bundle{svm, dt}, nil
}

// LoadSVM loads the linear SVM with its scaler and feature order
func (l *Loader) LoadSVM(ctx context.Context) (*inference.Bundle, error) {
	order, err := l.loadFeatureOrder(ctx, SVMFeaturesFile)
	if err != nil {
		return nil, err
	}

	var m svmArtifact
	if err := l.decode(ctx, SVMModelFile, &m); err != nil {
		return nil, err
	}
	if m.Kind != KindLinearSVM {
		return nil, loadError(SVMModelFile, fmt.Errorf("kind %q, want %q", m.Kind, KindLinearSVM))
	}
	svm, err := inference.NewLinearSVM(m.Weights, m.Intercept)
	if err != nil {
		return nil, loadError(SVMModelFile, err)
	}

	var s scalerArtifact
	if err := l.decode(ctx, SVMScalerFile, &s); err != nil {
		return nil, err
	}
	scaler, err := inference.NewScaler(s.Mean, s.Scale)
	if err != nil {
		return nil, loadError(SVMScalerFile, err)
	}

	bundle, err := inference.NewBundle(entity.BackendSVM, order, svm, scaler)
	if err != nil {
		return nil, loadError("svm", err)
	}

	l.logger.Info("Loaded model bundle",
		zap.String("backend", string(entity.BackendSVM)),
		zap.String("source", l.source.String()),
		zap.Int("features", len(order)),
	)
	return bundle, nil
}

// LoadDecisionTree loads the decision tree and its feature order
func (l *Loader) LoadDecisionTree(ctx context.Context) (*inference.Bundle, error) {
	order, err := l.loadFeatureOrder(ctx, DTFeaturesFile)
	if err != nil {
		return nil, err
	}

	var m treeArtifact
	if err := l.decode(ctx, DTModelFile, &m); err != nil {
		return nil, err
	}
	if m.Kind != KindDecisionTree {
		return nil, loadError(DTModelFile, fmt.Errorf("kind %q, want %q", m.Kind, KindDecisionTree))
	}
	tree, err := inference.NewDecisionTree(m.Nodes, m.NFeatures)
	if err != nil {
		return nil, loadError(DTModelFile, err)
	}

	bundle, err := inference.NewBundle(entity.BackendDecisionTree, order, tree, nil)
	if err != nil {
		return nil, loadError("dt", err)
	}

	l.logger.Info("Loaded model bundle",
		zap.String("backend", string(entity.BackendDecisionTree)),
		zap.String("source", l.source.String()),
		zap.Int("features", len(order)),
		zap.Int("nodes", tree.NodeCount()),
	)
	return bundle, nil
}

// loadFeatureOrder reads a feature list and checks it is a permutation of
// the known indicator set.
func (l *Loader) loadFeatureOrder(ctx context.Context, name string) ([]string, error) {
	var order []string
	if err := l.decode(ctx, name, &order); err != nil {
		return nil, err
	}

	known := entity.FeatureNames()
	if len(order) != len(known) {
		return nil, loadError(name, fmt.Errorf("%w: %d features listed, want %d", inference.ErrDimensionMismatch, len(order), len(known)))
	}
	seen := make(map[string]bool, len(order))
	for _, f := range order {
		if !entity.IsKnownFeature(f) {
			return nil, loadError(name, fmt.Errorf("unknown feature %q", f))
		}
		if seen[f] {
			return nil, loadError(name, fmt.Errorf("feature %q listed twice", f))
		}
		seen[f] = true
	}
	return order, nil
}

func (l *Loader) decode(ctx context.Context, name string, v any) error {
	rc, err := l.source.Open(ctx, name)
	if err != nil {
		return loadError(name, err)
	}
	defer rc.Close()

	dec := json.NewDecoder(rc)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return loadError(name, fmt.Errorf("failed to decode: %w", err))
	}
	// An artifact holds exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return loadError(name, errors.New("unexpected content after JSON value"))
	}
	return nil
}

func loadError(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", inference.ErrArtifactLoad, name, err)
}
