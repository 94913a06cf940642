package diagnosis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/themobileprof/medichat-be/internal/model"
	"github.com/themobileprof/medichat-be/internal/symptoms"
)

// Load reads the training header and the model artifact in parallel and
// refuses to build a predictor unless their feature orders agree
func Load(ctx context.Context, trainingCSV, modelPath string) (*Predictor, error) {
	var (
		vocab    *symptoms.Vocabulary
		artifact *model.Artifact
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() error {
		v, err := symptoms.LoadVocabularyFile(trainingCSV)
		if err != nil {
			return fmt.Errorf("vocabulary %s: %w", trainingCSV, err)
		}
		vocab = v
		return nil
	})
	g.Go(func() error {
		a, err := model.Load(modelPath)
		if err != nil {
			return err
		}
		artifact = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := artifact.CheckColumns(vocab.Labels()); err != nil {
		return nil, fmt.Errorf("model %s does not match %s: %w", modelPath, trainingCSV, err)
	}

	return NewPredictor(vocab, artifact)
}
