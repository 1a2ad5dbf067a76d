package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBackendID(t *testing.T) {
	assert.Equal(t, BackendSVM, ParseBackendID("svm"))
	assert.Equal(t, BackendSVM, ParseBackendID(" SVM "))
	assert.Equal(t, BackendDecisionTree, ParseBackendID("DT"))
	assert.Equal(t, BackendID("rf"), ParseBackendID("rf"))
}

func TestBackendID_DisplayName(t *testing.T) {
	assert.Equal(t, "SVM", BackendSVM.DisplayName())
	assert.Equal(t, "Decision Tree", BackendDecisionTree.DisplayName())
	assert.Equal(t, "rf", BackendID("rf").DisplayName())
}

func TestNewPrediction(t *testing.T) {
	p := NewPrediction(BackendDecisionTree, LabelPositive)

	assert.Equal(t, BackendDecisionTree, p.Backend)
	assert.Equal(t, 1, p.Label)
	assert.True(t, p.IsPositive())
	assert.False(t, NewPrediction(BackendSVM, LabelNegative).IsPositive())
}
