package entity

// Risk labels produced by every backend
const (
	LabelNegative = 0
	LabelPositive = 1
)

// Prediction is the verdict of one backend for one answer set.
// It is built per request and never stored.
type Prediction struct {
	Backend BackendID
	Label   int
}

// NewPrediction creates a new Prediction
func NewPrediction(backend BackendID, label int) *Prediction {
	return &Prediction{
		Backend: backend,
		Label:   label,
	}
}

// IsPositive reports whether the backend flagged elevated risk
func (p *Prediction) IsPositive() bool {
	return p.Label == LabelPositive
}
