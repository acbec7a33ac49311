package evaluation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
)

// LabelMismatchError is returned when a held-out set contains labels the
// classifier was never trained on.
type LabelMismatchError struct {
	Labels []string
	Dir    string
}

func (e *LabelMismatchError) Error() string {
	return fmt.Sprintf("held-out set %s has labels absent from training: %s", e.Dir, strings.Join(e.Labels, ", "))
}

// CheckLabels reports every held-out label missing from the training labels.
func CheckLabels(training, heldOut []string, dir string) error {
	known := make(map[string]bool, len(training))
	for _, label := range training {
		known[label] = true
	}

	var unknown []string
	for _, label := range heldOut {
		if !known[label] {
			unknown = append(unknown, label)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return &LabelMismatchError{Labels: unknown, Dir: dir}
}

type HeldOutResult struct {
	YTrue       []int
	YPred       []int
	Metrics     *ClassificationMetrics
	Informative []ClassFeatures
}

// EvaluateHeldOut trains one pipeline on the whole training set and scores
// it on held-out vectors built with the training vocabulary.
func EvaluateHeldOut(
	XTrain []features.Vector,
	yTrain []int,
	XTest []features.Vector,
	yTest []int,
	classes []int,
	factory models.PipelineFactory,
	vocab *features.Vocabulary,
	topK int,
) (*HeldOutResult, error) {
	if len(XTest) != len(yTest) {
		return nil, fmt.Errorf("held-out x and y must have the same length: %d vs %d", len(XTest), len(yTest))
	}

	pipeline, err := factory()
	if err != nil {
		return nil, err
	}
	if err := pipeline.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}

	predictions, err := pipeline.Predict(XTest)
	if err != nil {
		return nil, err
	}

	metrics, err := CalculateMetrics(yTest, predictions, classes)
	if err != nil {
		return nil, err
	}

	result := &HeldOutResult{YTrue: yTest, YPred: predictions, Metrics: metrics}
	if linear, ok := pipeline.Linear(); ok {
		result.Informative = MostInformative(linear, classes, vocab, topK)
	}
	return result, nil
}
