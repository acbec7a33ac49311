package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoderSortedOrder(t *testing.T) {
	le := NewLabelEncoder()
	y, err := le.FitTransform([]string{"NL", "DE", "FR", "DE", "EN"})
	require.NoError(t, err)

	assert.Equal(t, []string{"DE", "EN", "FR", "NL"}, le.Classes)
	assert.Equal(t, []int{3, 0, 2, 0, 1}, y)
	assert.Equal(t, []int{0, 1, 2, 3}, le.Codes())

	labels, err := le.InverseTransform([]int{1, 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"EN", "NL"}, labels)
}

func TestLabelEncoderErrors(t *testing.T) {
	le := NewLabelEncoder()
	_, err := le.Transform([]string{"DE"})
	assert.Error(t, err)
	_, err = le.InverseTransform([]int{0})
	assert.Error(t, err)

	le.Fit([]string{"DE", "EN"})
	_, err = le.Transform([]string{"IT"})
	assert.Error(t, err)
	_, err = le.InverseTransform([]int{5})
	assert.Error(t, err)
}
