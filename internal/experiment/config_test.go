package experiment

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := `
path: corpus
languages: [DE, EN]
balance: true
feature_kind: POS-universal
fold_count: 5
model:
  algorithm: bayes
  alpha: 0.5
`
	require.NoError(t, afero.WriteFile(fs, "run.yaml", []byte(raw), 0o644))

	config, err := LoadConfig(fs, "run.yaml")
	require.NoError(t, err)

	assert.Equal(t, "corpus", config.Path)
	assert.Equal(t, []string{"DE", "EN"}, config.Languages)
	assert.True(t, config.Balance)
	assert.Equal(t, features.POSUniversal, config.Features)
	assert.Equal(t, 5, config.FoldCount)
	assert.Equal(t, models.AlgorithmBayes, config.Model.Algorithm)
	assert.Equal(t, 0.5, config.Model.Alpha)
	assert.Equal(t, models.ClassWeightBalanced, config.Model.ClassWeight)
	assert.Equal(t, 4, config.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadConfig(fs, "missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("feature_kind: trees\n"), 0o644))
	_, err = LoadConfig(fs, "bad.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	config := DefaultConfig()
	config.Path = "data/train/"
	config.EvaluatePath = "data/test//"
	config.Languages = []string{"DE", " EN", "DE", ""}
	config.Workers = 0
	require.NoError(t, config.Validate())

	assert.Equal(t, "data/train", config.Path)
	assert.Equal(t, "data/test", config.EvaluatePath)
	assert.Equal(t, []string{"DE", "EN"}, config.Languages)
	assert.Equal(t, 1, config.Workers)

	config.FoldCount = 1
	assert.Error(t, config.Validate())

	empty := DefaultConfig()
	assert.Error(t, empty.Validate())
}

func TestWithOutput(t *testing.T) {
	fs := afero.NewMemMapFs()
	write := func(text string) func(io.Writer) error {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, text)
			return err
		}
	}

	require.NoError(t, withOutput(fs, "report.txt", false, nil, write("one\n")))
	require.NoError(t, withOutput(fs, "report.txt", true, nil, write("two\n")))
	got, err := afero.ReadFile(fs, "report.txt")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(got))

	require.NoError(t, withOutput(fs, "report.txt", false, nil, write("three\n")))
	got, err = afero.ReadFile(fs, "report.txt")
	require.NoError(t, err)
	assert.Equal(t, "three\n", string(got))

	var buf bytes.Buffer
	require.NoError(t, withOutput(fs, "", false, &buf, write("stdout")))
	assert.Equal(t, "stdout", buf.String())

	failed := errors.New("render failed")
	err = withOutput(fs, "other.txt", false, nil, func(io.Writer) error { return failed })
	assert.ErrorIs(t, err, failed)
}
