package evaluation

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(tags []string) []string {
	return tags
}

// corpus builds perClass documents for each class. Every class owns two
// features and all documents share one.
func corpus(t *testing.T, perClass ...int) ([]features.Vector, []int, *features.Vocabulary) {
	t.Helper()

	var docs [][]string
	var y []int
	for class, n := range perClass {
		for i := 0; i < n; i++ {
			doc := []string{fmt.Sprintf("c%d-a", class), "shared"}
			if i%2 == 0 {
				doc = append(doc, fmt.Sprintf("c%d-b", class))
			}
			docs = append(docs, doc)
			y = append(y, class)
		}
	}

	vz := features.NewVectorizerWithAnalyzer(identity)
	X, err := vz.FitTransform(docs)
	require.NoError(t, err)
	return X, y, vz.Vocabulary
}

func TestCrossValidate(t *testing.T) {
	X, y, vocab := corpus(t, 6, 6, 6)

	cv := NewCrossValidator(3, 0)
	cv.Vocabulary = vocab
	result, err := cv.CrossValidate(X, y, []int{0, 1, 2}, models.Factory(models.DefaultConfig(models.AlgorithmLinearSVC)))
	require.NoError(t, err)

	require.Len(t, result.Folds, 3)
	assert.Len(t, result.PooledTrue, len(y))
	assert.Len(t, result.PooledPred, len(y))

	var tested []int
	for i, fold := range result.Folds {
		assert.Equal(t, i+1, fold.Fold)
		tested = append(tested, fold.TestIndices...)
		require.Len(t, fold.Informative, 3)
		assert.Equal(t, fold.Metrics.Classes, result.Pooled.Classes)
	}
	sort.Ints(tested)
	for i, idx := range tested {
		assert.Equal(t, i, idx)
	}

	assert.Equal(t, 1.0, result.Pooled.Accuracy)
	assert.Equal(t, 1.0, result.MeanAccuracy)
	assert.Zero(t, result.StdAccuracy)

	top := result.Folds[0].Informative[1].Features[0].Term
	assert.Contains(t, []string{"c1-a", "c1-b"}, top)
}

func TestCrossValidateSerialMatchesParallel(t *testing.T) {
	X, y, vocab := corpus(t, 5, 4, 6)
	factory := models.Factory(models.DefaultConfig(models.AlgorithmLinearSVC))

	parallel := NewCrossValidator(4, 3)
	parallel.Vocabulary = vocab
	a, err := parallel.CrossValidate(X, y, []int{0, 1, 2}, factory)
	require.NoError(t, err)

	serial := NewCrossValidator(4, 3)
	serial.Vocabulary = vocab
	serial.Parallel = false
	b, err := serial.CrossValidate(X, y, []int{0, 1, 2}, factory)
	require.NoError(t, err)

	assert.Equal(t, a.PooledTrue, b.PooledTrue)
	assert.Equal(t, a.PooledPred, b.PooledPred)
	assert.Equal(t, a.Pooled.ConfusionMatrix, b.Pooled.ConfusionMatrix)
}

func TestCrossValidateInsufficientSamples(t *testing.T) {
	X, y, _ := corpus(t, 5, 2)

	cv := NewCrossValidator(3, 0)
	cv.ClassNames = []string{"DE", "NL"}
	_, err := cv.CrossValidate(X, y, []int{0, 1}, models.Factory(models.DefaultConfig(models.AlgorithmLinearSVC)))

	var ise *InsufficientSamplesError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "NL", ise.Label)
	assert.Contains(t, err.Error(), "NL")
}

func TestCrossValidateFactoryError(t *testing.T) {
	X, y, _ := corpus(t, 3, 3)
	_, err := NewCrossValidator(3, 0).CrossValidate(X, y, []int{0, 1}, models.Factory(models.ModelConfig{Algorithm: "tree"}))
	assert.Error(t, err)
}

func TestCrossValidateWithoutCoefficients(t *testing.T) {
	X, y, _ := corpus(t, 4, 4)
	result, err := NewCrossValidator(2, 0).CrossValidate(X, y, []int{0, 1}, models.Factory(models.DefaultConfig(models.AlgorithmKNN)))
	require.NoError(t, err)
	for _, fold := range result.Folds {
		assert.Nil(t, fold.Informative)
	}
}
