package inference

import (
	"encoding/json"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
)

// Vectorize lays out answers in the positional order a model expects.
// Position i of the result holds the answer for order[i]. Keys of answers
// that are not in order are ignored. All missing names are reported before
// any invalid value.
func Vectorize(answers entity.Answers, order []string) ([]float64, error) {
	vector := make([]float64, len(order))
	var missing, invalid []string

	for i, name := range order {
		raw, ok := answers[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		value, ok := binaryValue(raw)
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		vector[i] = value
	}

	if len(missing) > 0 {
		return nil, &FeatureError{Kind: ErrMissingFeature, Features: missing}
	}
	if len(invalid) > 0 {
		return nil, &FeatureError{Kind: ErrInvalidValue, Features: invalid}
	}
	return vector, nil
}

// binaryValue coerces a decoded answer to exactly 0 or 1
func binaryValue(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}

	switch v {
	case 0:
		return 0, true
	case 1:
		return 1, true
	default:
		return 0, false
	}
}
