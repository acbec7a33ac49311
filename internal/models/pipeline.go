package models

import (
	"fmt"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/preprocessing"
)

// Pipeline weights binary feature vectors with TF-IDF and classifies the
// weighted vectors. The transformer is only ever fit on training data.
type Pipeline struct {
	Transformer *preprocessing.TfidfTransformer
	Classifier  Model
}

// PipelineFactory builds an unfitted pipeline. Each call returns a new,
// independent instance.
type PipelineFactory func() (*Pipeline, error)

func NewPipeline(config ModelConfig) (*Pipeline, error) {
	clf, err := CreateModel(config)
	if err != nil {
		return nil, err
	}
	tr := preprocessing.NewTfidfTransformer()
	tr.SublinearTF = config.SublinearTF
	return &Pipeline{Transformer: tr, Classifier: clf}, nil
}

// Factory returns a PipelineFactory bound to config.
func Factory(config ModelConfig) PipelineFactory {
	return func() (*Pipeline, error) {
		return NewPipeline(config)
	}
}

func (p *Pipeline) Fit(X []features.Vector, y []int) error {
	weighted, err := p.Transformer.FitTransform(X)
	if err != nil {
		return fmt.Errorf("fitting weights: %w", err)
	}
	if err := p.Classifier.Fit(weighted, y); err != nil {
		return fmt.Errorf("fitting %s: %w", p.Classifier.GetName(), err)
	}
	return nil
}

func (p *Pipeline) Predict(X []features.Vector) ([]int, error) {
	weighted, err := p.Transformer.Transform(X)
	if err != nil {
		return nil, err
	}
	return p.Classifier.Predict(weighted), nil
}

// Linear returns the classifier as a LinearModel when it has per-feature
// weights.
func (p *Pipeline) Linear() (LinearModel, bool) {
	lm, ok := p.Classifier.(LinearModel)
	return lm, ok
}
