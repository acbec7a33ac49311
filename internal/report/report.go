// Package report renders evaluation results as plain text: informative
// features, tab separated confusion matrices and classification reports.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/imatr/Source-language-prediction/internal/evaluation"
	"github.com/shopspring/decimal"
)

// Writer formats report sections onto an io.Writer. The first write error is
// kept and every later write is skipped.
type Writer struct {
	w          io.Writer
	classNames []string
	err        error
}

func NewWriter(w io.Writer, classNames []string) *Writer {
	return &Writer{w: w, classNames: classNames}
}

func (rw *Writer) Err() error {
	return rw.err
}

func (rw *Writer) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func (rw *Writer) name(class int) string {
	if class >= 0 && class < len(rw.classNames) {
		return rw.classNames[class]
	}
	return fmt.Sprintf("%d", class)
}

// Informative writes one line per class, "DE: f1 | f2 | ...".
func (rw *Writer) Informative(ranked []evaluation.ClassFeatures) {
	rw.printf("Most informative features\n")
	for _, cf := range ranked {
		terms := make([]string, len(cf.Features))
		for i, f := range cf.Features {
			terms[i] = f.Term
		}
		rw.printf("%s: %s\n", rw.name(cf.Class), strings.Join(terms, " | "))
	}
	rw.printf("\n")
}

// ConfusionMatrix writes a header row of class labels, then one row per true
// class starting with its label. Cells are tab separated.
func (rw *Writer) ConfusionMatrix(m *evaluation.ClassificationMetrics) {
	header := make([]string, len(m.Classes))
	for i, class := range m.Classes {
		header[i] = rw.name(class)
	}
	rw.printf("\t%s\n", strings.Join(header, "\t"))

	for i, row := range m.ConfusionMatrix {
		cells := make([]string, len(row))
		for j, n := range row {
			cells[j] = fmt.Sprintf("%d", n)
		}
		rw.printf("%s\t%s\n", header[i], strings.Join(cells, "\t"))
	}
	rw.printf("\n")
}

// ClassificationReport writes per class precision, recall, F1 and support,
// followed by accuracy, macro and support weighted averages.
func (rw *Writer) ClassificationReport(m *evaluation.ClassificationMetrics) {
	width := len("weighted avg")
	for _, class := range m.Classes {
		if n := len(rw.name(class)); n > width {
			width = n
		}
	}

	rw.printf("%*s %9s %9s %9s %9s\n\n", width, "", "precision", "recall", "f1-score", "support")
	for _, class := range m.Classes {
		pc := m.PerClassMetrics[class]
		rw.printf("%*s %9s %9s %9s %9d\n", width, rw.name(class),
			fixed(pc.Precision), fixed(pc.Recall), fixed(pc.F1Score), pc.Support)
	}
	rw.printf("\n")
	rw.printf("%*s %9s %9s %9s %9d\n", width, "accuracy", "", "", fixed(m.Accuracy), m.NumSamples)
	rw.printf("%*s %9s %9s %9s %9d\n", width, "macro avg",
		fixed(m.MacroPrecision), fixed(m.MacroRecall), fixed(m.MacroF1), m.NumSamples)
	rw.printf("%*s %9s %9s %9s %9d\n", width, "weighted avg",
		fixed(m.WeightedPrecision), fixed(m.WeightedRecall), fixed(m.WeightedF1), m.NumSamples)
	rw.printf("\n")
}

// CrossValidation writes every fold followed by the pooled results.
func (rw *Writer) CrossValidation(result *evaluation.CVResult) {
	for _, fold := range result.Folds {
		rw.printf("Fold %d/%d\n\n", fold.Fold, len(result.Folds))
		if fold.Informative != nil {
			rw.Informative(fold.Informative)
		}
		rw.ConfusionMatrix(fold.Metrics)
		rw.ClassificationReport(fold.Metrics)
	}

	rw.printf("Overall\n\n")
	rw.ConfusionMatrix(result.Pooled)
	rw.ClassificationReport(result.Pooled)
	rw.printf("Fold accuracy: %s +/- %s\n\n", fixed(result.MeanAccuracy), fixed(result.StdAccuracy))
}

func (rw *Writer) HeldOut(result *evaluation.HeldOutResult) {
	rw.printf("Held-out evaluation\n\n")
	if result.Informative != nil {
		rw.Informative(result.Informative)
	}
	rw.ConfusionMatrix(result.Metrics)
	rw.ClassificationReport(result.Metrics)
}

// fixed rounds to two decimals, halves to even.
func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixedBank(2)
}
