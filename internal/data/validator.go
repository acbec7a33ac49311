package data

import (
	"fmt"

	"github.com/imatr/Source-language-prediction/internal/features"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

func (dv *DataValidator) ValidateDataset(X []features.Vector, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("dataset is empty")
	}

	if len(X) != len(y) {
		return fmt.Errorf("feature vectors and labels have different lengths: %d vs %d", len(X), len(y))
	}

	dim := X[0].Dim
	if dim == 0 {
		return fmt.Errorf("feature vectors cannot be empty")
	}

	for i, sample := range X {
		if sample.Dim != dim {
			return fmt.Errorf("inconsistent dimension at sample %d: expected %d, got %d", i, dim, sample.Dim)
		}
		if len(sample.Indices) != len(sample.Values) {
			return fmt.Errorf("malformed vector at sample %d: %d indices, %d values", i, len(sample.Indices), len(sample.Values))
		}
	}

	return nil
}

func (dv *DataValidator) ValidateLabels(y []int) error {
	if len(y) == 0 {
		return fmt.Errorf("labels are empty")
	}

	classCount := make(map[int]int)
	for _, label := range y {
		classCount[label]++
	}

	if len(classCount) < 2 {
		return fmt.Errorf("dataset must have at least 2 classes, found %d", len(classCount))
	}

	return nil
}

// DatasetStats summarises a vectorised dataset for logging.
type DatasetStats struct {
	Samples           int
	Features          int
	Classes           int
	ClassDistribution map[int]int
	MeanActive        float64
	EmptySamples      int
}

func (dv *DataValidator) GetDatasetStats(X []features.Vector, y []int) DatasetStats {
	stats := DatasetStats{
		Samples:           len(X),
		ClassDistribution: make(map[int]int),
	}
	if len(X) == 0 {
		return stats
	}
	stats.Features = X[0].Dim

	for _, label := range y {
		stats.ClassDistribution[label]++
	}
	stats.Classes = len(stats.ClassDistribution)

	active := 0
	for _, sample := range X {
		active += sample.NNZ()
		if sample.NNZ() == 0 {
			stats.EmptySamples++
		}
	}
	stats.MeanActive = float64(active) / float64(len(X))

	return stats
}
