package inference

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scaler standardizes vectors with parameters fitted offline:
// out[i] = (x[i] - mean[i]) / scale[i]
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler creates a Scaler from per-feature mean and scale values
func NewScaler(mean, scale []float64) (*Scaler, error) {
	if len(mean) == 0 {
		return nil, errors.New("scaler has no parameters")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("%w: scaler has %d means and %d scales", ErrDimensionMismatch, len(mean), len(scale))
	}
	for i := range mean {
		if !isFinite(mean[i]) {
			return nil, fmt.Errorf("scaler mean[%d] is not finite", i)
		}
		if !isFinite(scale[i]) || scale[i] == 0 {
			return nil, fmt.Errorf("scaler scale[%d] must be finite and non-zero", i)
		}
	}

	return &Scaler{
		mean:  append([]float64(nil), mean...),
		scale: append([]float64(nil), scale...),
	}, nil
}

// Dimensions returns the vector length the scaler was fitted on
func (s *Scaler) Dimensions() int {
	return len(s.mean)
}

// Params returns copies of the mean and scale vectors
func (s *Scaler) Params() (mean, scale []float64) {
	return append([]float64(nil), s.mean...), append([]float64(nil), s.scale...)
}

// Scale returns a standardized copy of vector
func (s *Scaler) Scale(vector []float64) ([]float64, error) {
	if len(vector) != len(s.mean) {
		return nil, fmt.Errorf("%w: vector has %d values, scaler expects %d", ErrDimensionMismatch, len(vector), len(s.mean))
	}

	out := make([]float64, len(vector))
	floats.SubTo(out, vector, s.mean)
	floats.Div(out, s.scale)
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
