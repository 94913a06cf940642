package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Tree is one decision tree in parallel-array form. Node i is a leaf when
// Left[i] is -1; otherwise a sample goes left when
// features[Feature[i]] <= Threshold[i]. Value[i] holds per-class weights.
type Tree struct {
	Left      []int       `json:"children_left"`
	Right     []int       `json:"children_right"`
	Feature   []int       `json:"feature"`
	Threshold []float64   `json:"threshold"`
	Value     [][]float64 `json:"value"`
}

// Artifact is a pre-trained disease classifier: a forest of decision trees
// plus the feature order it was trained with and the label decoder
type Artifact struct {
	FeatureColumns []string `json:"feature_columns"`
	Classes        []string `json:"classes"`
	Trees          []Tree   `json:"trees"`
}

var (
	ErrFeatureCount = errors.New("feature vector has the wrong length")
	ErrUnknownLabel = errors.New("encoded label out of range")
)

// Load reads and validates an artifact file
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return &a, nil
}

// Validate checks the artifact is internally consistent, so Predict never
// indexes out of range
func (a *Artifact) Validate() error {
	if len(a.FeatureColumns) == 0 {
		return errors.New("no feature columns")
	}
	if len(a.Classes) == 0 {
		return errors.New("no classes")
	}
	if len(a.Trees) == 0 {
		return errors.New("no trees")
	}

	for t, tree := range a.Trees {
		n := len(tree.Left)
		if n == 0 {
			return fmt.Errorf("tree %d has no nodes", t)
		}
		if len(tree.Right) != n || len(tree.Feature) != n || len(tree.Threshold) != n || len(tree.Value) != n {
			return fmt.Errorf("tree %d has mismatched node arrays", t)
		}
		for i := 0; i < n; i++ {
			if len(tree.Value[i]) != len(a.Classes) {
				return fmt.Errorf("tree %d node %d has %d class weights, want %d", t, i, len(tree.Value[i]), len(a.Classes))
			}
			if tree.Left[i] == -1 {
				continue
			}
			if tree.Left[i] <= i || tree.Left[i] >= n || tree.Right[i] <= i || tree.Right[i] >= n {
				return fmt.Errorf("tree %d node %d has invalid children", t, i)
			}
			if tree.Feature[i] < 0 || tree.Feature[i] >= len(a.FeatureColumns) {
				return fmt.Errorf("tree %d node %d splits on unknown feature %d", t, i, tree.Feature[i])
			}
		}
	}
	return nil
}

// CheckColumns fails unless columns is exactly the artifact's feature order
func (a *Artifact) CheckColumns(columns []string) error {
	if len(columns) != len(a.FeatureColumns) {
		return fmt.Errorf("model expects %d feature columns, training data has %d", len(a.FeatureColumns), len(columns))
	}
	for i, col := range columns {
		if a.FeatureColumns[i] != col {
			return fmt.Errorf("feature column %d is %q in training data but %q in model", i, col, a.FeatureColumns[i])
		}
	}
	return nil
}

// Predict returns the encoded label for one feature vector: the class with
// the highest mean leaf probability across trees, lowest index on ties.
func (a *Artifact) Predict(features []float64) (int, error) {
	if len(features) != len(a.FeatureColumns) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(a.FeatureColumns))
	}

	votes := make([]float64, len(a.Classes))
	for i := range a.Trees {
		leaf := a.Trees[i].leaf(features)
		total := 0.0
		for _, w := range leaf {
			total += w
		}
		if total == 0 {
			continue
		}
		for c, w := range leaf {
			votes[c] += w / total
		}
	}

	best := 0
	for c := 1; c < len(votes); c++ {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return best, nil
}

// Decode maps an encoded label back to its disease name
func (a *Artifact) Decode(label int) (string, error) {
	if label < 0 || label >= len(a.Classes) {
		return "", fmt.Errorf("%w: %d", ErrUnknownLabel, label)
	}
	return a.Classes[label], nil
}

// leaf walks the tree. Validate guarantees children point forward, so the
// walk always ends.
func (t *Tree) leaf(features []float64) []float64 {
	node := 0
	for t.Left[node] != -1 {
		if features[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Value[node]
}
