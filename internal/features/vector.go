package features

import "sort"

// Vector is a sparse feature vector over a vocabulary. Indices are strictly
// increasing and Values[i] belongs to Indices[i].
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// NewBinaryVector returns a presence vector with a 1 at every index. The
// indices may be unsorted and contain duplicates.
func NewBinaryVector(dim int, indices []int) Vector {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	v := Vector{Dim: dim, Indices: make([]int, 0, len(sorted)), Values: make([]float64, 0, len(sorted))}
	for i, idx := range sorted {
		if i > 0 && sorted[i-1] == idx {
			continue
		}
		v.Indices = append(v.Indices, idx)
		v.Values = append(v.Values, 1)
	}
	return v
}

// NNZ is the number of stored (non-zero) entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// Get returns the value at index i.
func (v Vector) Get(i int) float64 {
	pos := sort.SearchInts(v.Indices, i)
	if pos < len(v.Indices) && v.Indices[pos] == i {
		return v.Values[pos]
	}
	return 0
}

// Dot computes the inner product with a dense vector of at least Dim entries.
func (v Vector) Dot(dense []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		sum += v.Values[i] * dense[idx]
	}
	return sum
}

// AddScaledTo adds alpha*v to dst in place.
func (v Vector) AddScaledTo(dst []float64, alpha float64) {
	for i, idx := range v.Indices {
		dst[idx] += alpha * v.Values[i]
	}
}

// SquaredNorm is the squared L2 norm.
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, val := range v.Values {
		sum += val * val
	}
	return sum
}

// Clone returns a deep copy, so the result can be modified without touching v.
func (v Vector) Clone() Vector {
	return Vector{
		Dim:     v.Dim,
		Indices: append([]int(nil), v.Indices...),
		Values:  append([]float64(nil), v.Values...),
	}
}

// Dense expands the vector into a slice of length Dim.
func (v Vector) Dense() []float64 {
	dense := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		dense[idx] = v.Values[i]
	}
	return dense
}
