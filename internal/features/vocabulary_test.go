package features

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigrams() *Vectorizer {
	return NewVectorizerWithAnalyzer(NgramAnalyzer(NgramRange{Min: 2, Max: 2}))
}

func TestVectorizerBigrams(t *testing.T) {
	docs := [][]string{
		strings.Fields("NN VB NN"),
		strings.Fields("DT NN VB"),
	}

	vz := bigrams()
	vectors, err := vz.FitTransform(docs)
	require.NoError(t, err)

	assert.Equal(t, []string{"DT NN", "NN VB", "VB NN"}, vz.Vocabulary.Terms())
	assert.Equal(t, []float64{0, 1, 1}, vectors[0].Dense())
	assert.Equal(t, []float64{1, 1, 0}, vectors[1].Dense())
}

func TestVectorizerBinaryPresence(t *testing.T) {
	vz := bigrams()
	vectors, err := vz.FitTransform([][]string{strings.Fields("NN VB NN VB NN VB")})
	require.NoError(t, err)

	v := vectors[0]
	assert.Equal(t, 2, v.NNZ())
	for _, val := range v.Values {
		assert.Equal(t, 1.0, val)
	}
}

func TestVectorizerRoundTrip(t *testing.T) {
	vz := bigrams()
	_, err := vz.FitTransform([][]string{
		strings.Fields("NN VB DT JJ NN"),
		strings.Fields("PRP VBZ RB"),
	})
	require.NoError(t, err)

	v, err := vz.Transform(strings.Fields("PRP VBZ"))
	require.NoError(t, err)

	idx, ok := vz.Vocabulary.Index("PRP VBZ")
	require.True(t, ok)
	for i := 0; i < vz.Vocabulary.Len(); i++ {
		if i == idx {
			assert.Equal(t, 1.0, v.Get(i))
		} else {
			assert.Equal(t, 0.0, v.Get(i), vz.Vocabulary.Term(i))
		}
	}
}

func TestVectorizerDropsUnknownFeatures(t *testing.T) {
	vz := bigrams()
	require.NoError(t, vz.Fit([][]string{strings.Fields("NN VB NN")}))

	v, err := vz.Transform(strings.Fields("UH UH NN VB"))
	require.NoError(t, err)
	assert.Equal(t, 2, v.Dim)
	assert.Equal(t, []int{0}, v.Indices)
}

func TestVectorizerEmptyVocabulary(t *testing.T) {
	vz := bigrams()
	_, err := vz.FitTransform([][]string{{}, {"NN"}})

	var empty *VocabularyEmptyError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, 2, empty.Samples)
	assert.Nil(t, vz.Vocabulary)
}

func TestVectorizerTransformBeforeFit(t *testing.T) {
	_, err := bigrams().Transform([]string{"NN", "VB"})
	assert.Error(t, err)
}

func TestVectorOps(t *testing.T) {
	v := NewBinaryVector(5, []int{3, 1, 3})
	assert.Equal(t, []int{1, 3}, v.Indices)
	assert.Equal(t, 2.0, v.SquaredNorm())
	assert.Equal(t, 5.0, v.Dot([]float64{0, 2, 0, 3, 7}))

	dst := make([]float64, 5)
	v.AddScaledTo(dst, 0.5)
	assert.Equal(t, []float64{0, 0.5, 0, 0.5, 0}, dst)

	c := v.Clone()
	c.Values[0] = 9
	assert.Equal(t, 1.0, v.Values[0])
}
