package preprocessing

import (
	"math"
	"testing"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpus() []features.Vector {
	return []features.Vector{
		features.NewBinaryVector(3, []int{0, 1}),
		features.NewBinaryVector(3, []int{0}),
		features.NewBinaryVector(3, []int{0, 2}),
	}
}

func TestTfidfIDF(t *testing.T) {
	tr := NewTfidfTransformer()
	require.NoError(t, tr.Fit(corpus()))

	// n = 3; df = 3, 1, 1
	assert.InDelta(t, 1.0, tr.IDF[0], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, tr.IDF[1], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, tr.IDF[2], 1e-12)
}

func TestTfidfTransform(t *testing.T) {
	tr := NewTfidfTransformer()
	out, err := tr.FitTransform(corpus())
	require.NoError(t, err)

	idf := math.Log(2) + 1
	norm := math.Sqrt(1 + idf*idf)
	assert.Equal(t, []int{0, 1}, out[0].Indices)
	assert.InDelta(t, 1/norm, out[0].Values[0], 1e-12)
	assert.InDelta(t, idf/norm, out[0].Values[1], 1e-12)

	assert.Equal(t, []float64{1}, out[1].Values)

	for _, v := range out {
		assert.InDelta(t, 1.0, v.SquaredNorm(), 1e-12)
	}
}

func TestTfidfDoesNotMutateInput(t *testing.T) {
	X := corpus()
	_, err := NewTfidfTransformer().FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, X[0].Values)
}

func TestTfidfFitOnTrainOnly(t *testing.T) {
	train := corpus()[:2]
	test := []features.Vector{features.NewBinaryVector(3, []int{2})}

	tr := NewTfidfTransformer()
	require.NoError(t, tr.Fit(train))
	// feature 2 never occurs in the training documents
	assert.InDelta(t, math.Log(3.0)+1, tr.IDF[2], 1e-12)

	out, err := tr.Transform(test)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out[0].Values[0], 1e-12)
}

func TestTfidfEmptyVector(t *testing.T) {
	tr := NewTfidfTransformer()
	out, err := tr.FitTransform([]features.Vector{features.NewBinaryVector(2, nil), features.NewBinaryVector(2, []int{1})})
	require.NoError(t, err)
	assert.Empty(t, out[0].Values)
}

func TestTfidfErrors(t *testing.T) {
	tr := NewTfidfTransformer()
	_, err := tr.Transform(corpus())
	assert.Error(t, err, "transform before fit")

	assert.Error(t, tr.Fit(nil))

	require.NoError(t, tr.Fit(corpus()))
	_, err = tr.Transform([]features.Vector{features.NewBinaryVector(5, []int{4})})
	assert.Error(t, err)
}

func TestTfidfSublinear(t *testing.T) {
	tr := &TfidfTransformer{SublinearTF: true}
	require.NoError(t, tr.Fit(corpus()))
	v := features.Vector{Dim: 3, Indices: []int{1}, Values: []float64{math.E}}
	out, err := tr.Transform([]features.Vector{v})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out[0].Values[0], 1e-12)
}
