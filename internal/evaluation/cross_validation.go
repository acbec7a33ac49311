package evaluation

import (
    "fmt"
    "sync"

    "github.com/imatr/Source-language-prediction/internal/features"
    "github.com/imatr/Source-language-prediction/internal/models"
    "github.com/montanaflynn/stats"
    "go.uber.org/zap"
)

type CrossValidator struct {
    NFolds     int
    Shuffle    bool
    RandomSeed int64
    Parallel   bool
    MaxWorkers int
    TopK       int
    ClassNames []string
    Vocabulary *features.Vocabulary
    Logger     *zap.SugaredLogger
}

// NewCrossValidator fixes the seed used for fold assignment. Two runs with
// the same seed and data produce the same folds.
func NewCrossValidator(nFolds int, randomSeed int64) *CrossValidator {
    return &CrossValidator{
        NFolds:     nFolds,
        Shuffle:    true,
        RandomSeed: randomSeed,
        Parallel:   true,
        MaxWorkers: 4,
        TopK:       DefaultTopFeatures,
        Logger:     zap.NewNop().Sugar(),
    }
}

type FoldResult struct {
    Fold        int
    TestIndices []int
    YTrue       []int
    YPred       []int
    Metrics     *ClassificationMetrics
    Informative []ClassFeatures
}

type CVResult struct {
    Folds        []FoldResult
    PooledTrue   []int
    PooledPred   []int
    Pooled       *ClassificationMetrics
    Scores       []float64
    MeanAccuracy float64
    StdAccuracy  float64
}

// CrossValidate evaluates a fresh pipeline per fold. classes fixes the row
// and column order of every confusion matrix in the result.
func (cv *CrossValidator) CrossValidate(
    X []features.Vector,
    y []int,
    classes []int,
    factory models.PipelineFactory,
) (*CVResult, error) {

    if len(X) != len(y) {
        return nil, fmt.Errorf("x and y must have the same length: %d vs %d", len(X), len(y))
    }

    folds, err := NewStratifiedKFold(cv.NFolds, cv.Shuffle, cv.RandomSeed).Split(y)
    if err != nil {
        if ise, ok := err.(*InsufficientSamplesError); ok {
            ise.Label = cv.className(ise.Class)
        }
        return nil, err
    }

    var results []FoldResult
    if cv.Parallel && cv.MaxWorkers > 1 {
        results, err = cv.runParallel(X, y, classes, folds, factory)
    } else {
        results, err = cv.runSerial(X, y, classes, folds, factory)
    }
    if err != nil {
        return nil, err
    }

    return cv.pool(results, classes)
}

func (cv *CrossValidator) runParallel(
    X []features.Vector,
    y []int,
    classes []int,
    folds []Fold,
    factory models.PipelineFactory,
) ([]FoldResult, error) {

    results := make([]FoldResult, len(folds))
    errors := make([]error, len(folds))

    workers := cv.MaxWorkers
    if workers > len(folds) {
        workers = len(folds)
    }

    jobs := make(chan int, len(folds))
    var wg sync.WaitGroup

    for w := 0; w < workers; w++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for i := range jobs {
                results[i], errors[i] = cv.evaluateFold(X, y, classes, folds[i], factory)
            }
        }()
    }

    for i := range folds {
        jobs <- i
    }
    close(jobs)

    wg.Wait()

    for i, err := range errors {
        if err != nil {
            return nil, fmt.Errorf("fold %d failed: %w", i+1, err)
        }
    }

    return results, nil
}

func (cv *CrossValidator) runSerial(
    X []features.Vector,
    y []int,
    classes []int,
    folds []Fold,
    factory models.PipelineFactory,
) ([]FoldResult, error) {

    results := make([]FoldResult, len(folds))
    for i, fold := range folds {
        result, err := cv.evaluateFold(X, y, classes, fold, factory)
        if err != nil {
            return nil, fmt.Errorf("fold %d failed: %w", i+1, err)
        }
        results[i] = result
    }
    return results, nil
}

func (cv *CrossValidator) evaluateFold(
    X []features.Vector,
    y []int,
    classes []int,
    fold Fold,
    factory models.PipelineFactory,
) (FoldResult, error) {

    XTrain, yTrain := subset(X, y, fold.TrainIndices)
    XTest, yTest := subset(X, y, fold.TestIndices)

    pipeline, err := factory()
    if err != nil {
        return FoldResult{}, err
    }
    if err := pipeline.Fit(XTrain, yTrain); err != nil {
        return FoldResult{}, err
    }

    predictions, err := pipeline.Predict(XTest)
    if err != nil {
        return FoldResult{}, err
    }

    metrics, err := CalculateMetrics(yTest, predictions, classes)
    if err != nil {
        return FoldResult{}, err
    }

    result := FoldResult{
        Fold:        fold.Index + 1,
        TestIndices: fold.TestIndices,
        YTrue:       yTest,
        YPred:       predictions,
        Metrics:     metrics,
    }
    if linear, ok := pipeline.Linear(); ok {
        result.Informative = MostInformative(linear, classes, cv.Vocabulary, cv.TopK)
    }

    cv.Logger.Debugw("fold finished",
        "fold", result.Fold,
        "train", len(yTrain),
        "test", len(yTest),
        "accuracy", metrics.Accuracy,
    )

    return result, nil
}

// pool concatenates the fold predictions in fold order.
func (cv *CrossValidator) pool(results []FoldResult, classes []int) (*CVResult, error) {
    out := &CVResult{Folds: results, Scores: make([]float64, len(results))}
    for i, r := range results {
        out.PooledTrue = append(out.PooledTrue, r.YTrue...)
        out.PooledPred = append(out.PooledPred, r.YPred...)
        out.Scores[i] = r.Metrics.Accuracy
    }

    pooled, err := CalculateMetrics(out.PooledTrue, out.PooledPred, classes)
    if err != nil {
        return nil, err
    }
    out.Pooled = pooled

    out.MeanAccuracy, out.StdAccuracy = calculateStats(out.Scores)
    return out, nil
}

func calculateStats(scores []float64) (mean, std float64) {
    data := stats.Float64Data(scores)
    mean, err := stats.Mean(data)
    if err != nil {
        return 0, 0
    }
    if len(scores) > 1 {
        std, _ = stats.StandardDeviationSample(data)
    }
    return mean, std
}

func (cv *CrossValidator) className(class int) string {
    if class >= 0 && class < len(cv.ClassNames) {
        return cv.ClassNames[class]
    }
    return ""
}

func subset(X []features.Vector, y []int, indices []int) ([]features.Vector, []int) {
    XSub := make([]features.Vector, len(indices))
    ySub := make([]int, len(indices))
    for i, idx := range indices {
        XSub[i] = X[idx]
        ySub[i] = y[idx]
    }
    return XSub, ySub
}
