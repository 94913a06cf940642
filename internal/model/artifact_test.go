package model

import (
	"errors"
	"strings"
	"testing"
)

func loadForest(t *testing.T) *Artifact {
	t.Helper()
	a, err := Load("testdata/forest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return a
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "valid forest", path: "testdata/forest.json"},
		{name: "missing file", path: "testdata/nope.json", wantErr: "failed to read"},
		{name: "not json", path: "testdata/garbage.json", wantErr: "failed to parse"},
		{name: "children out of range", path: "testdata/broken_children.json", wantErr: "invalid children"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestArtifact_Validate(t *testing.T) {
	valid := func() *Artifact {
		return &Artifact{
			FeatureColumns: []string{"a", "b"},
			Classes:        []string{"x", "y"},
			Trees: []Tree{{
				Left:      []int{1, -1, -1},
				Right:     []int{2, -1, -1},
				Feature:   []int{1, 0, 0},
				Threshold: []float64{0.5, 0, 0},
				Value:     [][]float64{{1, 1}, {1, 0}, {0, 1}},
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(a *Artifact)
		wantErr bool
	}{
		{name: "valid", mutate: func(a *Artifact) {}},
		{name: "no columns", mutate: func(a *Artifact) { a.FeatureColumns = nil }, wantErr: true},
		{name: "no classes", mutate: func(a *Artifact) { a.Classes = nil }, wantErr: true},
		{name: "no trees", mutate: func(a *Artifact) { a.Trees = nil }, wantErr: true},
		{name: "ragged arrays", mutate: func(a *Artifact) { a.Trees[0].Threshold = []float64{0.5} }, wantErr: true},
		{name: "wrong class width", mutate: func(a *Artifact) { a.Trees[0].Value[2] = []float64{1} }, wantErr: true},
		{name: "unknown feature", mutate: func(a *Artifact) { a.Trees[0].Feature[0] = 7 }, wantErr: true},
		{name: "backward edge", mutate: func(a *Artifact) { a.Trees[0].Right[0] = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestArtifact_PredictAndDecode(t *testing.T) {
	a := loadForest(t)

	tests := []struct {
		name     string
		features []float64
		want     string
	}{
		{name: "headache and fever", features: []float64{0, 0, 1, 1}, want: "Migraine"},
		{name: "skin rash", features: []float64{0, 1, 0, 0}, want: "Fungal infection"},
		{name: "itching", features: []float64{1, 0, 0, 0}, want: "Allergy"},
		{name: "fever", features: []float64{0, 0, 0, 1}, want: "Common Cold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := a.Predict(tt.features)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			got, err := a.Decode(label)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("prediction = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArtifact_PredictRejectsWrongWidth(t *testing.T) {
	a := loadForest(t)

	_, err := a.Predict([]float64{1, 0})
	if !errors.Is(err, ErrFeatureCount) {
		t.Fatalf("error = %v, want ErrFeatureCount", err)
	}
}

func TestArtifact_DecodeOutOfRange(t *testing.T) {
	a := loadForest(t)

	for _, label := range []int{-1, 4, 100} {
		if _, err := a.Decode(label); !errors.Is(err, ErrUnknownLabel) {
			t.Errorf("Decode(%d) error = %v, want ErrUnknownLabel", label, err)
		}
	}
}

func TestArtifact_CheckColumns(t *testing.T) {
	a := loadForest(t)

	tests := []struct {
		name    string
		columns []string
		wantErr bool
	}{
		{name: "exact match", columns: []string{"itching", "skin_rash", "headache", "fever"}},
		{name: "reordered", columns: []string{"skin_rash", "itching", "headache", "fever"}, wantErr: true},
		{name: "missing column", columns: []string{"itching", "skin_rash", "headache"}, wantErr: true},
		{name: "renamed column", columns: []string{"itching", "skin rash", "headache", "fever"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.CheckColumns(tt.columns)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckColumns() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
