package symptoms

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// entry is one symptom column of the classifier
type entry struct {
	Label      string // column name as found in the training data
	Normalized string
}

// Vocabulary is the ordered list of symptom labels the classifier accepts.
// Its order is the feature-vector order and must not change after loading.
type Vocabulary struct {
	entries []entry
	index   map[string]int
}

// NewVocabulary builds a vocabulary from labels in feature order. Empty or
// duplicate labels are rejected since either would shift feature positions.
func NewVocabulary(labels []string) (*Vocabulary, error) {
	if len(labels) == 0 {
		return nil, errors.New("vocabulary has no symptom labels")
	}

	v := &Vocabulary{
		entries: make([]entry, 0, len(labels)),
		index:   make(map[string]int, len(labels)),
	}
	for i, label := range labels {
		if label == "" {
			return nil, fmt.Errorf("symptom column %d has an empty name", i)
		}
		if _, dup := v.index[label]; dup {
			return nil, fmt.Errorf("symptom column %q appears more than once", label)
		}
		v.index[label] = i
		v.entries = append(v.entries, entry{Label: label, Normalized: Normalize(label)})
	}
	return v, nil
}

// LoadVocabularyCSV reads the header row of a training CSV. Every column but
// the last (the diagnosis label) is a symptom, in file order.
func LoadVocabularyCSV(r io.Reader) (*Vocabulary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("training data is empty")
		}
		return nil, fmt.Errorf("failed to read training header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("training header has %d column(s), need symptoms plus a label column", len(header))
	}

	return NewVocabulary(header[:len(header)-1])
}

// LoadVocabularyFile opens path and reads its header with LoadVocabularyCSV
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training data: %w", err)
	}
	defer f.Close()

	return LoadVocabularyCSV(f)
}

// Len returns the number of symptom labels
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Labels returns a copy of the labels in feature order
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Label
	}
	return out
}

// FeatureVector encodes labels as a presence vector in vocabulary order.
// Unknown labels are ignored.
func (v *Vocabulary) FeatureVector(labels []string) []float64 {
	vec := make([]float64, len(v.entries))
	for _, label := range labels {
		if i, ok := v.index[label]; ok {
			vec[i] = 1
		}
	}
	return vec
}
