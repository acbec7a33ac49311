package experiment

import (
	"bytes"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/imatr/Source-language-prediction/internal/data"
	"github.com/imatr/Source-language-prediction/internal/evaluation"
	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
	"github.com/imatr/Source-language-prediction/internal/preprocessing"
	"github.com/imatr/Source-language-prediction/internal/report"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Runner executes one classification run: sample selection, vectorisation,
// cross-validation and the optional held-out evaluation.
type Runner struct {
	Config Config
	fs     afero.Fs
	logger *zap.SugaredLogger
	out    io.Writer
}

func NewRunner(config Config, fs afero.Fs, logger *zap.SugaredLogger, out io.Writer) *Runner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Runner{Config: config, fs: fs, logger: logger, out: out}
}

type Result struct {
	ClassNames     []string
	VocabularySize int
	CV             *evaluation.CVResult
	HeldOut        *evaluation.HeldOutResult
}

type dataset struct {
	X []features.Vector
	y []int
}

func (r *Runner) Run() (*Result, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	config := r.Config
	kind := config.Features

	selector := data.NewSampleSelector(r.fs, kind.Extension(), config.Balance)
	labels := config.Languages
	if len(labels) == 0 {
		discovered, err := selector.DiscoverLabels(config.Path)
		if err != nil {
			return nil, err
		}
		labels = discovered
	}
	if len(labels) == 0 {
		return nil, errors.Errorf("no class directories in %s", config.Path)
	}

	selection, err := selector.Select(config.Path, labels)
	if err != nil {
		return nil, errors.Wrap(err, "selecting samples")
	}
	for _, label := range labels {
		r.logger.Infow("selected samples", "class", label, "files", humanize.Comma(int64(len(selection[label]))))
	}

	var heldOutRefs []data.SampleRef
	if config.EvaluatePath != "" {
		heldOutRefs, err = r.selectHeldOut(labels, selection)
		if err != nil {
			return nil, err
		}
	}

	train, encoder, vectorizer, err := r.load(data.Refs(selection, labels))
	if err != nil {
		return nil, err
	}
	classes := encoder.Codes()

	factory := models.Factory(config.Model)

	cv := evaluation.NewCrossValidator(config.FoldCount, config.Seed)
	cv.Parallel = config.Workers > 1
	cv.MaxWorkers = config.Workers
	cv.TopK = config.TopFeatures
	cv.ClassNames = encoder.Classes
	cv.Vocabulary = vectorizer.Vocabulary
	cv.Logger = r.logger

	r.logger.Infow("cross-validating", "folds", config.FoldCount, "model", config.Model.Algorithm, "workers", config.Workers)
	start := time.Now()
	cvResult, err := cv.CrossValidate(train.X, train.y, classes, factory)
	if err != nil {
		return nil, errors.Wrap(err, "cross-validation")
	}
	r.logger.Infow("cross-validation finished",
		"accuracy", cvResult.Pooled.Accuracy,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	r.logger.Debug(cvResult.Pooled.FormatMetrics())

	result := &Result{
		ClassNames:     encoder.Classes,
		VocabularySize: vectorizer.Vocabulary.Len(),
		CV:             cvResult,
	}

	if err := r.emit(false, encoder.Classes, func(rw *report.Writer) { rw.CrossValidation(cvResult) }); err != nil {
		return nil, err
	}

	if config.ResultsCSV != "" {
		err := withOutput(r.fs, config.ResultsCSV, false, r.out, func(w io.Writer) error {
			return report.WriteFoldSummaries(w, report.FoldSummaries(cvResult))
		})
		if err != nil {
			return nil, errors.Wrap(err, "writing fold summary")
		}
	}

	if config.EvaluatePath != "" {
		heldOut, err := r.evaluateHeldOut(heldOutRefs, train, encoder, vectorizer, factory)
		if err != nil {
			return nil, err
		}
		result.HeldOut = heldOut

		if err := r.emit(true, encoder.Classes, func(rw *report.Writer) { rw.HeldOut(heldOut) }); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// selectHeldOut lists the held-out samples and fails before any training
// when they carry labels the training data lacks.
func (r *Runner) selectHeldOut(labels []string, selection map[string][]string) ([]data.SampleRef, error) {
	config := r.Config
	selector := data.NewSampleSelector(r.fs, config.Features.Extension(), false)

	heldOutLabels := config.Languages
	if len(heldOutLabels) == 0 {
		discovered, err := selector.DiscoverLabels(config.EvaluatePath)
		if err != nil {
			return nil, err
		}
		heldOutLabels = discovered
	}

	heldOut, err := selector.Select(config.EvaluatePath, heldOutLabels)
	if err != nil {
		return nil, errors.Wrap(err, "selecting held-out samples")
	}

	var trained, present []string
	for _, label := range labels {
		if len(selection[label]) > 0 {
			trained = append(trained, label)
		}
	}
	for _, label := range heldOutLabels {
		if len(heldOut[label]) > 0 {
			present = append(present, label)
		}
	}
	if err := evaluation.CheckLabels(trained, present, config.EvaluatePath); err != nil {
		return nil, err
	}

	refs := data.Refs(heldOut, heldOutLabels)
	if len(refs) == 0 {
		return nil, &data.DataNotFoundError{Label: "any class", Dir: config.EvaluatePath, Extension: config.Features.Extension()}
	}
	return refs, nil
}

func (r *Runner) load(refs []data.SampleRef) (*dataset, *preprocessing.LabelEncoder, *features.Vectorizer, error) {
	config := r.Config

	samples, err := r.read(refs)
	if err != nil {
		return nil, nil, nil, err
	}

	encoder := preprocessing.NewLabelEncoder()
	y, err := encoder.FitTransform(data.Labels(samples))
	if err != nil {
		return nil, nil, nil, err
	}

	vectorizer := features.NewVectorizer(config.Features)
	X, err := vectorizer.FitTransform(data.Documents(samples))
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "vectorising %s samples", config.Features)
	}
	r.logger.Infow("data transformed", "features", humanize.Comma(int64(vectorizer.Vocabulary.Len())))

	validator := data.NewDataValidator()
	if err := validator.ValidateDataset(X, y); err != nil {
		return nil, nil, nil, err
	}
	if err := validator.ValidateLabels(y); err != nil {
		return nil, nil, nil, err
	}
	stats := validator.GetDatasetStats(X, y)
	r.logger.Debugw("dataset",
		"samples", stats.Samples,
		"classes", stats.Classes,
		"mean_active", stats.MeanActive,
		"empty", stats.EmptySamples,
	)

	return &dataset{X: X, y: y}, encoder, vectorizer, nil
}

func (r *Runner) read(refs []data.SampleRef) ([]data.Sample, error) {
	reader := data.NewSampleReader(r.fs)
	total := humanize.Comma(int64(len(refs)))
	return reader.ReadAll(refs, r.Config.BatchSize, func(done, _ int) {
		r.logger.Infow("reading samples", "done", humanize.Comma(int64(done)), "total", total)
	})
}

func (r *Runner) evaluateHeldOut(
	refs []data.SampleRef,
	train *dataset,
	encoder *preprocessing.LabelEncoder,
	vectorizer *features.Vectorizer,
	factory models.PipelineFactory,
) (*evaluation.HeldOutResult, error) {

	samples, err := r.read(refs)
	if err != nil {
		return nil, err
	}

	y, err := encoder.Transform(data.Labels(samples))
	if err != nil {
		return nil, err
	}

	X, err := vectorizer.TransformAll(data.Documents(samples))
	if err != nil {
		return nil, err
	}

	r.logger.Infow("testing on held-out set", "samples", humanize.Comma(int64(len(samples))))
	result, err := evaluation.EvaluateHeldOut(train.X, train.y, X, y, encoder.Codes(), factory,
		vectorizer.Vocabulary, r.Config.TopFeatures)
	if err != nil {
		return nil, errors.Wrap(err, "held-out evaluation")
	}
	return result, nil
}

// emit renders one report stage in memory and writes it only once rendering
// succeeded.
func (r *Runner) emit(appendTo bool, classNames []string, render func(*report.Writer)) error {
	var buf bytes.Buffer
	rw := report.NewWriter(&buf, classNames)
	render(rw)
	if err := rw.Err(); err != nil {
		return err
	}

	return withOutput(r.fs, r.Config.ReportPath, appendTo, r.out, func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return errors.Wrap(err, "writing report")
	})
}
