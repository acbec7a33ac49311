package preprocessing

import (
	"fmt"
	"math"

	"github.com/imatr/Source-language-prediction/internal/features"
	"gonum.org/v1/gonum/floats"
)

// TfidfTransformer reweights feature vectors by inverse document frequency
// and normalises them to unit L2 length. The idf is the smoothed
// ln((1+n)/(1+df)) + 1, so features present in every document keep weight 1.
type TfidfTransformer struct {
	UseIDF      bool
	SmoothIDF   bool
	SublinearTF bool
	Normalize   bool
	IsFitted    bool
	IDF         []float64
}

func NewTfidfTransformer() *TfidfTransformer {
	return &TfidfTransformer{
		UseIDF:    true,
		SmoothIDF: true,
		Normalize: true,
	}
}

func (t *TfidfTransformer) Fit(X []features.Vector) error {
	if len(X) == 0 {
		return fmt.Errorf("empty dataset")
	}

	dim := X[0].Dim
	df := make([]float64, dim)
	for i, v := range X {
		if v.Dim != dim {
			return fmt.Errorf("inconsistent dimension at sample %d: expected %d, got %d", i, dim, v.Dim)
		}
		for j, idx := range v.Indices {
			if v.Values[j] != 0 {
				df[idx]++
			}
		}
	}

	t.IDF = make([]float64, dim)
	n := float64(len(X))
	smooth := 0.0
	if t.SmoothIDF {
		smooth = 1
	}
	for j := range df {
		if df[j]+smooth == 0 {
			t.IDF[j] = 1
			continue
		}
		t.IDF[j] = math.Log((n+smooth)/(df[j]+smooth)) + 1
	}

	t.IsFitted = true
	return nil
}

func (t *TfidfTransformer) Transform(X []features.Vector) ([]features.Vector, error) {
	if !t.IsFitted {
		return nil, fmt.Errorf("tfidf transformer must be fitted before transform")
	}

	result := make([]features.Vector, len(X))
	for i, v := range X {
		if v.Dim != len(t.IDF) {
			return nil, fmt.Errorf("sample %d has dimension %d, transformer was fitted on %d", i, v.Dim, len(t.IDF))
		}
		result[i] = t.transformOne(v)
	}

	return result, nil
}

func (t *TfidfTransformer) FitTransform(X []features.Vector) ([]features.Vector, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}

func (t *TfidfTransformer) transformOne(v features.Vector) features.Vector {
	out := v.Clone()
	for j, idx := range out.Indices {
		tf := out.Values[j]
		if t.SublinearTF && tf > 0 {
			tf = 1 + math.Log(tf)
		}
		if t.UseIDF {
			tf *= t.IDF[idx]
		}
		out.Values[j] = tf
	}

	if t.Normalize && len(out.Values) > 0 {
		if norm := floats.Norm(out.Values, 2); norm > 0 {
			floats.Scale(1/norm, out.Values)
		}
	}
	return out
}
