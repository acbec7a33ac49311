package evaluation

import (
	"sort"

	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
)

// DefaultTopFeatures is the number of features listed per class.
const DefaultTopFeatures = 10

type RankedFeature struct {
	Index  int
	Term   string
	Weight float64
}

// ClassFeatures lists the features most associated with one class, strongest
// first.
type ClassFeatures struct {
	Class    int
	Features []RankedFeature
}

// MostInformative returns, for every class, the k vocabulary features with
// the largest coefficients in descending order. Equal weights keep ascending
// vocabulary order. Classes the model has no coefficients for are skipped.
func MostInformative(model models.LinearModel, classes []int, vocab *features.Vocabulary, k int) []ClassFeatures {
	if k <= 0 {
		k = DefaultTopFeatures
	}

	result := make([]ClassFeatures, 0, len(classes))
	for _, class := range classes {
		coef, ok := model.Coef(class)
		if !ok {
			continue
		}

		order := make([]int, len(coef))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return coef[order[a]] > coef[order[b]]
		})

		n := k
		if n > len(order) {
			n = len(order)
		}
		ranked := make([]RankedFeature, n)
		for i := 0; i < n; i++ {
			idx := order[i]
			ranked[i] = RankedFeature{Index: idx, Weight: coef[idx]}
			if vocab != nil {
				ranked[i].Term = vocab.Term(idx)
			}
		}
		result = append(result, ClassFeatures{Class: class, Features: ranked})
	}

	return result
}
