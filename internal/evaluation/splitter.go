package evaluation

import (
	"fmt"
	"math/rand"
	"sort"
)

// Fold is one train/test partition of the sample indices.
type Fold struct {
	Index        int
	TrainIndices []int
	TestIndices  []int
}

// InsufficientSamplesError is returned when a class has fewer samples than
// there are folds, so it cannot appear in every test partition.
type InsufficientSamplesError struct {
	Class int
	Label string
	Count int
	Folds int
}

func (e *InsufficientSamplesError) Error() string {
	name := e.Label
	if name == "" {
		name = fmt.Sprintf("%d", e.Class)
	}
	return fmt.Sprintf("class %s has %d samples, fewer than %d folds", name, e.Count, e.Folds)
}

type StratifiedKFold struct {
	nFolds     int
	shuffle    bool
	randomSeed int64
}

func NewStratifiedKFold(nFolds int, shuffle bool, randomSeed int64) *StratifiedKFold {
	return &StratifiedKFold{
		nFolds:     nFolds,
		shuffle:    shuffle,
		randomSeed: randomSeed,
	}
}

// Split assigns every sample to exactly one test fold. Within a class the
// members are dealt round robin, continuing where the previous class left
// off, so each class puts floor or ceil of count/k samples into every fold
// and the fold sizes differ by at most one.
func (skf *StratifiedKFold) Split(y []int) ([]Fold, error) {
	if skf.nFolds < 2 {
		return nil, fmt.Errorf("number of folds must be at least 2, got %d", skf.nFolds)
	}
	if len(y) == 0 {
		return nil, fmt.Errorf("cannot split empty dataset")
	}

	classIndices := make(map[int][]int)
	for i, label := range y {
		classIndices[label] = append(classIndices[label], i)
	}

	classes := make([]int, 0, len(classIndices))
	for class := range classIndices {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	for _, class := range classes {
		if n := len(classIndices[class]); n < skf.nFolds {
			return nil, &InsufficientSamplesError{Class: class, Count: n, Folds: skf.nFolds}
		}
	}

	rng := rand.New(rand.NewSource(skf.randomSeed))
	tests := make([][]int, skf.nFolds)
	offset := 0
	for _, class := range classes {
		indices := classIndices[class]
		if skf.shuffle {
			rng.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
		for j, idx := range indices {
			f := (offset + j) % skf.nFolds
			tests[f] = append(tests[f], idx)
		}
		offset += len(indices)
	}

	folds := make([]Fold, skf.nFolds)
	for f := range folds {
		sort.Ints(tests[f])

		inTest := make(map[int]bool, len(tests[f]))
		for _, idx := range tests[f] {
			inTest[idx] = true
		}
		train := make([]int, 0, len(y)-len(tests[f]))
		for i := range y {
			if !inTest[i] {
				train = append(train, i)
			}
		}

		folds[f] = Fold{Index: f, TrainIndices: train, TestIndices: tests[f]}
	}

	return folds, nil
}
