package models

import (
	"sort"

	"github.com/imatr/Source-language-prediction/internal/features"
)

type Model interface {
	Fit(X []features.Vector, y []int) error
	Predict(X []features.Vector) []int
	GetType() string
	GetName() string
	GetParams() map[string]any
	GetClasses() []int
	Reset()
}

// LinearModel is a model with one weight per class and vocabulary feature.
// Larger weights associate a feature more strongly with the class.
type LinearModel interface {
	Model
	Coef(class int) ([]float64, bool)
}

type BaseModel struct {
	Name    string
	Params  map[string]any
	Classes []int
}

func (bm *BaseModel) GetType() string {
	return bm.Name
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}

func (bm *BaseModel) GetClasses() []int {
	return bm.Classes
}

func (bm *BaseModel) classPosition(class int) (int, bool) {
	pos := sort.SearchInts(bm.Classes, class)
	if pos < len(bm.Classes) && bm.Classes[pos] == class {
		return pos, true
	}
	return 0, false
}

// ExtractClasses returns the distinct labels of y in ascending order.
func ExtractClasses(y []int) []int {
	classMap := make(map[int]bool)
	for _, label := range y {
		classMap[label] = true
	}

	classes := make([]int, 0, len(classMap))
	for class := range classMap {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	return classes
}

// BalancedClassWeights weights each class by n / (len(classes) * count), so
// that every class contributes the same total weight to the loss.
func BalancedClassWeights(y []int, classes []int) map[int]float64 {
	counts := make(map[int]int, len(classes))
	for _, label := range y {
		counts[label]++
	}

	weights := make(map[int]float64, len(classes))
	for _, class := range classes {
		if counts[class] == 0 {
			weights[class] = 1
			continue
		}
		weights[class] = float64(len(y)) / (float64(len(classes)) * float64(counts[class]))
	}
	return weights
}
