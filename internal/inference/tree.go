package inference

import (
	"errors"
	"fmt"

	"github.com/ressKim-io/CerviGuard/internal/domain/entity"
	"github.com/ressKim-io/CerviGuard/internal/domain/service"
)

// TreeNode is one node of a flattened binary decision tree.
// Internal nodes send x[FeatureIdx] <= Threshold to LeftChild, the rest to RightChild.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

// DecisionTree evaluates a fixed tree exported by the offline trainer.
// Nodes are stored in pre-order with the root at index 0.
type DecisionTree struct {
	nodes     []TreeNode
	nFeatures int
}

var _ service.Classifier = (*DecisionTree)(nil)

// NewDecisionTree validates the node table and creates a DecisionTree.
// Children must sit after their parent, so every walk terminates.
func NewDecisionTree(nodes []TreeNode, nFeatures int) (*DecisionTree, error) {
	if nFeatures <= 0 {
		return nil, errors.New("tree must declare a positive feature count")
	}
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}

	for i, node := range nodes {
		if node.IsLeaf {
			if node.ClassLabel != entity.LabelNegative && node.ClassLabel != entity.LabelPositive {
				return nil, fmt.Errorf("tree leaf %d has label %d, want 0 or 1", i, node.ClassLabel)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= nFeatures {
			return nil, fmt.Errorf("%w: tree node %d tests feature %d of %d", ErrDimensionMismatch, i, node.FeatureIdx, nFeatures)
		}
		if !isFinite(node.Threshold) {
			return nil, fmt.Errorf("tree node %d threshold is not finite", i)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) {
			return nil, fmt.Errorf("tree node %d has invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("tree node %d has invalid right child %d", i, node.RightChild)
		}
	}

	return &DecisionTree{
		nodes:     append([]TreeNode(nil), nodes...),
		nFeatures: nFeatures,
	}, nil
}

// Classify walks from the root to a leaf and returns its label
func (dt *DecisionTree) Classify(vector []float64) (int, error) {
	if len(vector) != dt.nFeatures {
		return 0, fmt.Errorf("%w: vector has %d values, tree expects %d", ErrDimensionMismatch, len(vector), dt.nFeatures)
	}

	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if vector[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (dt *DecisionTree) Dimensions() int { return dt.nFeatures }

func (dt *DecisionTree) RequiresScaling() bool { return false }

// NodeCount returns the number of nodes in the tree
func (dt *DecisionTree) NodeCount() int { return len(dt.nodes) }
