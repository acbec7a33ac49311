package report

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/imatr/Source-language-prediction/internal/evaluation"
)

// FoldSummary is one row of the results CSV. The pooled result uses the fold
// name "pooled".
type FoldSummary struct {
	Fold             string  `csv:"fold"`
	Samples          int     `csv:"samples"`
	Accuracy         float64 `csv:"accuracy"`
	BalancedAccuracy float64 `csv:"balanced_accuracy"`
	MacroPrecision   float64 `csv:"macro_precision"`
	MacroRecall      float64 `csv:"macro_recall"`
	MacroF1          float64 `csv:"macro_f1"`
	WeightedF1       float64 `csv:"weighted_f1"`
}

func summarize(fold string, m *evaluation.ClassificationMetrics) *FoldSummary {
	return &FoldSummary{
		Fold:             fold,
		Samples:          m.NumSamples,
		Accuracy:         m.Accuracy,
		BalancedAccuracy: m.BalancedAccuracy,
		MacroPrecision:   m.MacroPrecision,
		MacroRecall:      m.MacroRecall,
		MacroF1:          m.MacroF1,
		WeightedF1:       m.WeightedF1,
	}
}

func FoldSummaries(result *evaluation.CVResult) []*FoldSummary {
	rows := make([]*FoldSummary, 0, len(result.Folds)+1)
	for _, fold := range result.Folds {
		rows = append(rows, summarize(strconv.Itoa(fold.Fold), fold.Metrics))
	}
	return append(rows, summarize("pooled", result.Pooled))
}

// WriteFoldSummaries writes the rows as CSV with a header line.
func WriteFoldSummaries(w io.Writer, rows []*FoldSummary) error {
	return gocsv.Marshal(&rows, w)
}
