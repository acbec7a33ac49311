package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/imatr/Source-language-prediction/internal/evaluation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldSummaries(t *testing.T) {
	m := sampleMetrics(t)
	result := &evaluation.CVResult{
		Folds:  []evaluation.FoldResult{{Fold: 1, Metrics: m}, {Fold: 2, Metrics: m}},
		Pooled: m,
	}

	rows := FoldSummaries(result)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0].Fold)
	assert.Equal(t, "pooled", rows[2].Fold)
	assert.Equal(t, 5, rows[2].Samples)
	assert.InDelta(t, 0.6, rows[2].Accuracy, 1e-12)

	var buf bytes.Buffer
	require.NoError(t, WriteFoldSummaries(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "fold,samples,accuracy,balanced_accuracy,macro_precision,macro_recall,macro_f1,weighted_f1", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "pooled,5,"))
}
