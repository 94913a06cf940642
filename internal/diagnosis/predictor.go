package diagnosis

import (
	"errors"
	"fmt"

	"github.com/themobileprof/medichat-be/internal/symptoms"
)

// Model is the pre-trained classifier seen as a black box
type Model interface {
	Predict(features []float64) (int, error)
	Decode(label int) (string, error)
}

// Predictor turns a set of symptom labels into a disease name
type Predictor struct {
	vocab *symptoms.Vocabulary
	model Model
}

// NewPredictor pairs a vocabulary with the model trained on its columns.
// Column order is not checked here; Load does that for file-backed models.
func NewPredictor(vocab *symptoms.Vocabulary, model Model) (*Predictor, error) {
	if vocab == nil {
		return nil, errors.New("predictor needs a vocabulary")
	}
	if model == nil {
		return nil, errors.New("predictor needs a model")
	}
	return &Predictor{vocab: vocab, model: model}, nil
}

// Vocabulary returns the symptom vocabulary the model was trained on
func (p *Predictor) Vocabulary() *symptoms.Vocabulary {
	return p.vocab
}

// PredictDisease classifies one set of symptoms. With no symptoms it
// reports found=false without consulting the model. Model failures are
// returned to the caller rather than treated as "no disease".
func (p *Predictor) PredictDisease(labels []string) (disease string, found bool, err error) {
	if len(labels) == 0 {
		return "", false, nil
	}

	label, err := p.model.Predict(p.vocab.FeatureVector(labels))
	if err != nil {
		return "", false, fmt.Errorf("model prediction failed: %w", err)
	}

	disease, err = p.model.Decode(label)
	if err != nil {
		return "", false, fmt.Errorf("model label decoding failed: %w", err)
	}
	return disease, true, nil
}
