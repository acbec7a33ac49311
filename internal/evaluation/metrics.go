package evaluation

import (
    "fmt"
    "math"
)

type ClassificationMetrics struct {
    Accuracy          float64              `json:"accuracy"`
    BalancedAccuracy  float64              `json:"balanced_accuracy"`
    MacroPrecision    float64              `json:"macro_precision"`
    MacroRecall       float64              `json:"macro_recall"`
    MacroF1           float64              `json:"macro_f1"`
    WeightedPrecision float64              `json:"weighted_precision"`
    WeightedRecall    float64              `json:"weighted_recall"`
    WeightedF1        float64              `json:"weighted_f1"`
    Classes           []int                `json:"classes"`
    PerClassMetrics   map[int]ClassMetrics `json:"per_class_metrics"`
    ConfusionMatrix   [][]int              `json:"confusion_matrix"`
    NumSamples        int                  `json:"num_samples"`
    NumClasses        int                  `json:"num_classes"`
}

type ClassMetrics struct {
    Precision float64 `json:"precision"`
    Recall    float64 `json:"recall"`
    F1Score   float64 `json:"f1_score"`
    Support   int     `json:"support"`
}

// CalculateMetrics scores predictions against the truth. Rows and columns of
// the confusion matrix follow the order of classes, which the caller keeps
// fixed for a whole run so that fold and pooled matrices line up.
func CalculateMetrics(yTrue, yPred []int, classes []int) (*ClassificationMetrics, error) {
    if len(yTrue) != len(yPred) {
        return nil, fmt.Errorf("true and predicted labels differ in length: %d vs %d", len(yTrue), len(yPred))
    }
    if len(yTrue) == 0 {
        return nil, fmt.Errorf("no predictions to score")
    }
    if len(classes) == 0 {
        return nil, fmt.Errorf("no classes given")
    }

    numSamples := len(yTrue)
    numClasses := len(classes)

    confusionMatrix := buildConfusionMatrix(yTrue, yPred, classes)

    classSupport := make(map[int]int)
    for _, class := range yTrue {
        classSupport[class]++
    }

    perClassMetrics := make(map[int]ClassMetrics)
    var macroPrec, macroRec, macroF1 float64
    var weightedPrec, weightedRec, weightedF1 float64
    totalSupport := 0

    for i, class := range classes {
        tp := confusionMatrix[i][i]
        fp := 0
        fn := 0

        for j := range classes {
            if j != i {
                fp += confusionMatrix[j][i]
                fn += confusionMatrix[i][j]
            }
        }

        precision := safeDivide(float64(tp), float64(tp+fp))
        recall := safeDivide(float64(tp), float64(tp+fn))
        f1 := safeDivide(2*precision*recall, precision+recall)

        support := classSupport[class]
        perClassMetrics[class] = ClassMetrics{
            Precision: precision,
            Recall:    recall,
            F1Score:   f1,
            Support:   support,
        }

        macroPrec += precision
        macroRec += recall
        macroF1 += f1

        weightedPrec += precision * float64(support)
        weightedRec += recall * float64(support)
        weightedF1 += f1 * float64(support)
        totalSupport += support
    }

    correct := 0
    for i, pred := range yPred {
        if pred == yTrue[i] {
            correct++
        }
    }

    return &ClassificationMetrics{
        Accuracy:          float64(correct) / float64(numSamples),
        BalancedAccuracy:  macroRec / float64(numClasses),
        MacroPrecision:    macroPrec / float64(numClasses),
        MacroRecall:       macroRec / float64(numClasses),
        MacroF1:           macroF1 / float64(numClasses),
        WeightedPrecision: safeDivide(weightedPrec, float64(totalSupport)),
        WeightedRecall:    safeDivide(weightedRec, float64(totalSupport)),
        WeightedF1:        safeDivide(weightedF1, float64(totalSupport)),
        Classes:           append([]int(nil), classes...),
        PerClassMetrics:   perClassMetrics,
        ConfusionMatrix:   confusionMatrix,
        NumSamples:        numSamples,
        NumClasses:        numClasses,
    }, nil
}

// buildConfusionMatrix counts (true, predicted) pairs. Labels outside classes
// are not counted.
func buildConfusionMatrix(yTrue, yPred []int, classes []int) [][]int {
    numClasses := len(classes)
    matrix := make([][]int, numClasses)
    for i := range matrix {
        matrix[i] = make([]int, numClasses)
    }

    classToIdx := make(map[int]int)
    for i, class := range classes {
        classToIdx[class] = i
    }

    for i := range yTrue {
        trueIdx, trueOk := classToIdx[yTrue[i]]
        predIdx, predOk := classToIdx[yPred[i]]
        if trueOk && predOk {
            matrix[trueIdx][predIdx]++
        }
    }

    return matrix
}

func safeDivide(numerator, denominator float64) float64 {
    if denominator == 0 {
        return 0.0
    }
    result := numerator / denominator
    if math.IsNaN(result) || math.IsInf(result, 0) {
        return 0.0
    }
    return result
}

func (m *ClassificationMetrics) FormatMetrics() string {
    result := fmt.Sprintf("Accuracy: %.4f\n", m.Accuracy)
    result += fmt.Sprintf("Balanced Accuracy: %.4f\n", m.BalancedAccuracy)
    result += fmt.Sprintf("Macro Avg - Precision: %.4f, Recall: %.4f, F1: %.4f\n",
        m.MacroPrecision, m.MacroRecall, m.MacroF1)
    result += fmt.Sprintf("Weighted Avg - Precision: %.4f, Recall: %.4f, F1: %.4f\n",
        m.WeightedPrecision, m.WeightedRecall, m.WeightedF1)
    return result
}
