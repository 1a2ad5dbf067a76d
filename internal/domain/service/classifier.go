package service

// Classifier evaluates a positional feature vector and returns a binary label.
// Implementations are immutable after construction and safe for concurrent use.
type Classifier interface {
	// Classify returns 0 or 1 for the given vector
	Classify(vector []float64) (int, error)

	// Dimensions is the vector length the model was trained on
	Dimensions() int

	// RequiresScaling reports whether vectors must be standardized before Classify
	RequiresScaling() bool
}
