package inference

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
)

func canonicalOrder() []string {
	names := entity.FeatureNames()
	order := make([]string, len(names))
	for i, n := range names {
		order[i] = string(n)
	}
	return order
}

func allAnswers(value any) entity.Answers {
	answers := make(entity.Answers)
	for _, name := range canonicalOrder() {
		answers[name] = value
	}
	return answers
}

func TestVectorize(t *testing.T) {
	t.Run("lays out values in declared order", func(t *testing.T) {
		answers := entity.Answers{"A": 1, "B": 0, "C": 1}

		vector, err := Vectorize(answers, []string{"A", "B", "C"})

		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0, 1}, vector)
	})

	t.Run("permuted order permutes the vector", func(t *testing.T) {
		answers := entity.Answers{"A": 1, "B": 0, "C": 1}

		vector, err := Vectorize(answers, []string{"B", "C", "A"})

		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 1}, vector)
	})

	t.Run("every name lands at its own position", func(t *testing.T) {
		order := canonicalOrder()
		for i, name := range order {
			answers := allAnswers(0)
			answers[name] = 1

			vector, err := Vectorize(answers, order)

			require.NoError(t, err, name)
			require.Len(t, vector, len(order))
			for j, v := range vector {
				if j == i {
					assert.Equal(t, 1.0, v, "position of %s", name)
				} else {
					assert.Equal(t, 0.0, v, "position %d while setting %s", j, name)
				}
			}
		}
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		answers := allAnswers(1)
		answers["Age"] = 42
		answers["comment"] = "extra client field"

		vector, err := Vectorize(answers, canonicalOrder())

		require.NoError(t, err)
		assert.Len(t, vector, 10)
	})

	t.Run("accepts numeric and boolean encodings", func(t *testing.T) {
		inputs := []any{
			0, 1, int8(1), int16(0), int32(1), int64(0),
			uint(1), uint8(0), uint16(1), uint32(0), uint64(1),
			float32(1), 0.0, 1.0, json.Number("1"), json.Number("0.0"), true, false,
		}
		for _, in := range inputs {
			vector, err := Vectorize(entity.Answers{"A": in}, []string{"A"})

			require.NoError(t, err, "%T %v", in, in)
			assert.Contains(t, []float64{0, 1}, vector[0])
		}
	})

	t.Run("empty order yields empty vector", func(t *testing.T) {
		vector, err := Vectorize(entity.Answers{"A": 1}, nil)

		require.NoError(t, err)
		assert.Empty(t, vector)
	})
}

func TestVectorize_MissingFeature(t *testing.T) {
	order := canonicalOrder()
	for _, name := range order {
		t.Run("without "+name, func(t *testing.T) {
			answers := allAnswers(1)
			delete(answers, name)

			vector, err := Vectorize(answers, order)

			assert.Nil(t, vector)
			assert.ErrorIs(t, err, ErrMissingFeature)
			var fe *FeatureError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, []string{name}, fe.Features)
		})
	}

	t.Run("reports every missing name in order", func(t *testing.T) {
		_, err := Vectorize(entity.Answers{"B": 1}, []string{"A", "B", "C"})

		var fe *FeatureError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{"A", "C"}, fe.Features)
		assert.Equal(t, "missing feature: A, C", err.Error())
	})

	t.Run("missing wins over invalid", func(t *testing.T) {
		_, err := Vectorize(entity.Answers{"A": "yes"}, []string{"A", "B"})

		assert.ErrorIs(t, err, ErrMissingFeature)
		assert.NotErrorIs(t, err, ErrInvalidValue)
	})
}

func TestVectorize_InvalidValue(t *testing.T) {
	order := canonicalOrder()
	bad := []any{2, -1, "yes", nil, 0.5, "1", []any{1}, map[string]any{"v": 1}, json.Number("2")}

	for _, name := range order {
		for _, value := range bad {
			t.Run(fmt.Sprintf("%s=%v", name, value), func(t *testing.T) {
				answers := allAnswers(0)
				answers[name] = value

				vector, err := Vectorize(answers, order)

				assert.Nil(t, vector)
				assert.ErrorIs(t, err, ErrInvalidValue)
				var fe *FeatureError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, []string{name}, fe.Features)
			})
		}
	}
}
