package models

import (
    "fmt"
    "math"

    "github.com/imatr/Source-language-prediction/internal/features"
    "gonum.org/v1/gonum/floats"
)

// NaiveBayes is a multinomial naive Bayes classifier over non-negative
// feature weights with additive (Laplace) smoothing.
type NaiveBayes struct {
    BaseModel
    Alpha          float64
    UniformPriors  bool
    ClassLogPriors []float64
    FeatureLogProb [][]float64
}

func NewNaiveBayes(alpha float64, uniformPriors bool) *NaiveBayes {
    return &NaiveBayes{
        Alpha:         alpha,
        UniformPriors: uniformPriors,
        BaseModel: BaseModel{
            Name: "NaiveBayes",
            Params: map[string]any{
                "alpha":          alpha,
                "uniform_priors": uniformPriors,
            },
        },
    }
}

func (nb *NaiveBayes) Fit(X []features.Vector, y []int) error {
    if len(X) == 0 {
        return fmt.Errorf("cannot fit on an empty dataset")
    }
    if len(X) != len(y) {
        return fmt.Errorf("x and y must have the same length: %d vs %d", len(X), len(y))
    }

    nb.Classes = ExtractClasses(y)
    nFeatures := X[0].Dim

    nb.ClassLogPriors = make([]float64, len(nb.Classes))
    nb.FeatureLogProb = make([][]float64, len(nb.Classes))

    for k, class := range nb.Classes {
        counts := make([]float64, nFeatures)
        nSamples := 0
        for i, label := range y {
            if label != class {
                continue
            }
            for j, idx := range X[i].Indices {
                if X[i].Values[j] < 0 {
                    return fmt.Errorf("negative feature value at sample %d", i)
                }
                counts[idx] += X[i].Values[j]
            }
            nSamples++
        }

        if nSamples == 0 {
            return fmt.Errorf("class %d has no samples", class)
        }

        if nb.UniformPriors {
            nb.ClassLogPriors[k] = -math.Log(float64(len(nb.Classes)))
        } else {
            nb.ClassLogPriors[k] = math.Log(float64(nSamples) / float64(len(y)))
        }

        total := floats.Sum(counts) + nb.Alpha*float64(nFeatures)
        logProb := make([]float64, nFeatures)
        for j, c := range counts {
            logProb[j] = math.Log((c + nb.Alpha) / total)
        }
        nb.FeatureLogProb[k] = logProb
    }

    return nil
}

func (nb *NaiveBayes) jointLogLikelihood(sample features.Vector) []float64 {
    scores := make([]float64, len(nb.Classes))
    for k := range nb.Classes {
        scores[k] = nb.ClassLogPriors[k] + sample.Dot(nb.FeatureLogProb[k])
    }
    return scores
}

func (nb *NaiveBayes) Predict(X []features.Vector) []int {
    predictions := make([]int, len(X))

    for i, sample := range X {
        predictions[i] = nb.Classes[floats.MaxIdx(nb.jointLogLikelihood(sample))]
    }

    return predictions
}

// PredictProba returns normalised class probabilities in class order.
func (nb *NaiveBayes) PredictProba(X []features.Vector) [][]float64 {
    proba := make([][]float64, len(X))

    for i, sample := range X {
        logProbs := nb.jointLogLikelihood(sample)
        maxLogProb := floats.Max(logProbs)

        sumExp := 0.0
        for _, lp := range logProbs {
            sumExp += math.Exp(lp - maxLogProb)
        }

        proba[i] = make([]float64, len(logProbs))
        for j, lp := range logProbs {
            proba[i][j] = math.Exp(lp-maxLogProb) / sumExp
        }
    }

    return proba
}

// Coef returns the per-feature log probabilities of a class.
func (nb *NaiveBayes) Coef(class int) ([]float64, bool) {
    pos, ok := nb.classPosition(class)
    if !ok || nb.FeatureLogProb == nil {
        return nil, false
    }
    return nb.FeatureLogProb[pos], true
}

func (nb *NaiveBayes) Reset() {
    nb.ClassLogPriors = nil
    nb.FeatureLogProb = nil
    nb.Classes = nil
}
