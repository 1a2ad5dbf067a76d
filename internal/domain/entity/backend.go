package entity

import "strings"

// BackendID selects one of the preloaded model bundles
type BackendID string

const (
	BackendSVM          BackendID = "svm"
	BackendDecisionTree BackendID = "dt"
)

// ParseBackendID normalizes a client-supplied identifier.
// It does not check that the backend exists; the prediction service does.
func ParseBackendID(s string) BackendID {
	return BackendID(strings.ToLower(strings.TrimSpace(s)))
}

// DisplayName returns the human readable model name shown to clients
func (b BackendID) DisplayName() string {
	switch b {
	case BackendSVM:
		return "SVM"
	case BackendDecisionTree:
		return "Decision Tree"
	default:
		return string(b)
	}
}
