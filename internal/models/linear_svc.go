package models

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/imatr/Source-language-prediction/internal/features"
	"gonum.org/v1/gonum/floats"
)

const (
	ClassWeightBalanced = "balanced"
	ClassWeightNone     = "none"
)

// LinearSVC is a one-vs-rest linear support vector classifier with squared
// hinge loss and L2 regularisation. Every binary problem is solved in the
// dual by coordinate descent; the intercept is learned as the weight of a
// constant feature of value 1.
type LinearSVC struct {
	BaseModel
	C           float64
	Tol         float64
	MaxIter     int
	ClassWeight string
	Seed        int64

	Weights    [][]float64
	Intercepts []float64
	Iterations []int
}

func NewLinearSVC(c, tol float64, maxIter int, classWeight string, seed int64) *LinearSVC {
	return &LinearSVC{
		C:           c,
		Tol:         tol,
		MaxIter:     maxIter,
		ClassWeight: classWeight,
		Seed:        seed,
		BaseModel: BaseModel{
			Name: "LinearSVC",
			Params: map[string]any{
				"c":            c,
				"tol":          tol,
				"max_iter":     maxIter,
				"class_weight": classWeight,
				"seed":         seed,
			},
		},
	}
}

func (m *LinearSVC) Fit(X []features.Vector, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("cannot fit on an empty dataset")
	}
	if len(X) != len(y) {
		return fmt.Errorf("x and y must have the same length: %d vs %d", len(X), len(y))
	}

	m.Classes = ExtractClasses(y)
	dim := X[0].Dim

	classWeights := make(map[int]float64, len(m.Classes))
	if m.ClassWeight == ClassWeightBalanced {
		classWeights = BalancedClassWeights(y, m.Classes)
	} else {
		for _, class := range m.Classes {
			classWeights[class] = 1
		}
	}

	// Per-sample upper bound of the dual variables, C_i = C * w(y_i). For
	// the squared hinge the bound moves into the diagonal as 1 / (2 C_i).
	diag := make([]float64, len(X))
	qd := make([]float64, len(X))
	for i, x := range X {
		diag[i] = 0.5 / (m.C * classWeights[y[i]])
		qd[i] = diag[i] + x.SquaredNorm() + 1
	}

	m.Weights = make([][]float64, len(m.Classes))
	m.Intercepts = make([]float64, len(m.Classes))
	m.Iterations = make([]int, len(m.Classes))

	for k, class := range m.Classes {
		signs := make([]float64, len(y))
		for i, label := range y {
			if label == class {
				signs[i] = 1
			} else {
				signs[i] = -1
			}
		}
		rng := rand.New(rand.NewSource(m.Seed + int64(k)))
		m.Weights[k], m.Intercepts[k], m.Iterations[k] = m.solveDual(X, signs, diag, qd, dim, rng)
	}

	return nil
}

func (m *LinearSVC) solveDual(X []features.Vector, signs, diag, qd []float64, dim int, rng *rand.Rand) ([]float64, float64, int) {
	w := make([]float64, dim)
	var b float64
	alpha := make([]float64, len(X))

	order := make([]int, len(X))
	for i := range order {
		order[i] = i
	}

	iter := 0
	for iter < m.MaxIter {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		pgMax := math.Inf(-1)
		pgMin := math.Inf(1)

		for _, i := range order {
			x := X[i]
			yi := signs[i]

			g := yi*(x.Dot(w)+b) - 1 + alpha[i]*diag[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Max(alpha[i]-g/qd[i], 0)
				d := (alpha[i] - old) * yi
				x.AddScaledTo(w, d)
				b += d
			}
		}

		iter++
		if pgMax-pgMin <= m.Tol {
			break
		}
	}

	return w, b, iter
}

// DecisionFunction returns one score per class for a sample.
func (m *LinearSVC) DecisionFunction(x features.Vector) []float64 {
	scores := make([]float64, len(m.Classes))
	for k := range m.Classes {
		scores[k] = x.Dot(m.Weights[k]) + m.Intercepts[k]
	}
	return scores
}

func (m *LinearSVC) Predict(X []features.Vector) []int {
	predictions := make([]int, len(X))
	for i, x := range X {
		predictions[i] = m.Classes[floats.MaxIdx(m.DecisionFunction(x))]
	}
	return predictions
}

func (m *LinearSVC) Coef(class int) ([]float64, bool) {
	pos, ok := m.classPosition(class)
	if !ok || m.Weights == nil {
		return nil, false
	}
	return m.Weights[pos], true
}

func (m *LinearSVC) Reset() {
	m.Weights = nil
	m.Intercepts = nil
	m.Iterations = nil
	m.Classes = nil
}
