package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagsOverrideConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := "path: corpus\nfeature_kind: tokens\nfold_count: 5\nbalance: true\n"
	require.NoError(t, afero.WriteFile(fs, "run.yaml", []byte(raw), 0o644))

	cmd, opts := newRootCmd(fs, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"--config", "run.yaml", "-k", "3", "--algorithm", "bayes", "-l", "DE,NL"}))

	built, err := buildConfig(cmd, fs, opts, "")
	require.NoError(t, err)

	assert.Equal(t, "corpus", built.Path)
	assert.Equal(t, features.Tokens, built.Features)
	assert.Equal(t, 3, built.FoldCount)
	assert.True(t, built.Balance)
	assert.Equal(t, models.AlgorithmBayes, built.Model.Algorithm)
	assert.Equal(t, []string{"DE", "NL"}, built.Languages)
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	cmd, opts := newRootCmd(fs, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"-f", "pos-universal"}))

	built, err := buildConfig(cmd, fs, opts, "data/")
	require.NoError(t, err)
	assert.Equal(t, "data/", built.Path)
	assert.Equal(t, features.POSUniversal, built.Features)
	assert.Equal(t, 10, built.FoldCount)
}

func TestUnknownFeatureKind(t *testing.T) {
	fs := afero.NewMemMapFs()
	cmd, _ := newRootCmd(fs, &bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"-f", "chars", "data"})
	assert.Error(t, cmd.Execute())
}

func TestExecute(t *testing.T) {
	fs := afero.NewMemMapFs()
	tags := map[string]string{"DE": "ART NN VVFIN ART ADJA NN", "NL": "LID N WW VZ LID N"}
	for label, line := range tags {
		for i := 0; i < 4; i++ {
			path := filepath.Join("corpus", label, fmt.Sprintf("%d.pos", i))
			require.NoError(t, afero.WriteFile(fs, path, []byte(line+"\n"), 0o644))
		}
	}

	var stdout, stderr bytes.Buffer
	cmd, _ := newRootCmd(fs, &stdout, &stderr)
	cmd.SetArgs([]string{"-k", "2", "--workers", "1", "corpus"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "Overall")
	assert.Contains(t, stderr.String(), "2 folds over 8 samples")
}
