package models

import (
    "fmt"
    "math"
    "sort"

    "github.com/imatr/Source-language-prediction/internal/features"
)

// KNN votes among the k training samples with the highest cosine similarity.
type KNN struct {
    BaseModel
    K      int
    XTrain []features.Vector
    yTrain []int
    norms  []float64
}

func NewKNN(k int) *KNN {
    if k <= 0 {
        k = 5
    }

    return &KNN{
        K: k,
        BaseModel: BaseModel{
            Name: "KNN",
            Params: map[string]any{
                "k":        k,
                "distance": "cosine",
            },
        },
    }
}

func (knn *KNN) Fit(X []features.Vector, y []int) error {
    if len(X) != len(y) {
        return fmt.Errorf("x and y must have the same length: %d vs %d", len(X), len(y))
    }

    knn.XTrain = make([]features.Vector, len(X))
    knn.norms = make([]float64, len(X))
    for i := range X {
        knn.XTrain[i] = X[i].Clone()
        knn.norms[i] = math.Sqrt(X[i].SquaredNorm())
    }

    knn.yTrain = make([]int, len(y))
    copy(knn.yTrain, y)

    knn.Classes = ExtractClasses(y)
    return nil
}

func (knn *KNN) Predict(X []features.Vector) []int {
    predictions := make([]int, len(X))

    for i, sample := range X {
        neighbors := knn.findNeighbors(sample)
        predictions[i] = knn.majorityVote(neighbors)
    }

    return predictions
}

func (knn *KNN) findNeighbors(sample features.Vector) []int {
    type neighbor struct {
        index      int
        similarity float64
    }

    norm := math.Sqrt(sample.SquaredNorm())
    neighbors := make([]neighbor, len(knn.XTrain))

    for i, trainSample := range knn.XTrain {
        sim := 0.0
        if norm > 0 && knn.norms[i] > 0 {
            sim = sparseDot(sample, trainSample) / (norm * knn.norms[i])
        }
        neighbors[i] = neighbor{index: i, similarity: sim}
    }

    sort.SliceStable(neighbors, func(i, j int) bool {
        return neighbors[i].similarity > neighbors[j].similarity
    })

    k := knn.K
    if k > len(neighbors) {
        k = len(neighbors)
    }
    kNeighbors := make([]int, k)
    for i := 0; i < k; i++ {
        kNeighbors[i] = neighbors[i].index
    }

    return kNeighbors
}

// majorityVote breaks ties in favour of the smaller class label.
func (knn *KNN) majorityVote(neighbors []int) int {
    votes := make(map[int]int)

    for _, neighborIdx := range neighbors {
        votes[knn.yTrain[neighborIdx]]++
    }

    maxVotes := 0
    bestClass := knn.Classes[0]

    for _, class := range knn.Classes {
        if votes[class] > maxVotes {
            maxVotes = votes[class]
            bestClass = class
        }
    }

    return bestClass
}

func sparseDot(a, b features.Vector) float64 {
    sum := 0.0
    i, j := 0, 0
    for i < len(a.Indices) && j < len(b.Indices) {
        switch {
        case a.Indices[i] == b.Indices[j]:
            sum += a.Values[i] * b.Values[j]
            i++
            j++
        case a.Indices[i] < b.Indices[j]:
            i++
        default:
            j++
        }
    }
    return sum
}

func (knn *KNN) Reset() {
    knn.XTrain = nil
    knn.yTrain = nil
    knn.norms = nil
    knn.Classes = nil
}
