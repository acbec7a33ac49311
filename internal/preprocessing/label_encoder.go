package preprocessing

import (
	"fmt"
	"sort"
)

// LabelEncoder maps class labels to consecutive integers. Labels are encoded
// in sorted order, which fixes the class order of every report in a run.
type LabelEncoder struct {
	ClassToInt map[string]int
	IntToClass map[int]string
	Classes    []string
	IsFitted   bool
}

func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{
		ClassToInt: make(map[string]int),
		IntToClass: make(map[int]string),
		IsFitted:   false,
	}
}

func (le *LabelEncoder) Fit(labels []string) {
	le.ClassToInt = make(map[string]int)
	le.IntToClass = make(map[int]string)

	uniqueLabels := make(map[string]bool)
	for _, label := range labels {
		uniqueLabels[label] = true
	}

	le.Classes = make([]string, 0, len(uniqueLabels))
	for label := range uniqueLabels {
		le.Classes = append(le.Classes, label)
	}
	sort.Strings(le.Classes)

	for idx, label := range le.Classes {
		le.ClassToInt[label] = idx
		le.IntToClass[idx] = label
	}

	le.IsFitted = true
}

func (le *LabelEncoder) Transform(labels []string) ([]int, error) {
	if !le.IsFitted {
		return nil, fmt.Errorf("LabelEncoder must be fitted before transform")
	}

	result := make([]int, len(labels))
	for i, label := range labels {
		if val, ok := le.ClassToInt[label]; ok {
			result[i] = val
		} else {
			return nil, fmt.Errorf("unknown label: %s", label)
		}
	}

	return result, nil
}

func (le *LabelEncoder) FitTransform(labels []string) ([]int, error) {
	le.Fit(labels)
	return le.Transform(labels)
}

func (le *LabelEncoder) InverseTransform(encoded []int) ([]string, error) {
	if !le.IsFitted {
		return nil, fmt.Errorf("LabelEncoder must be fitted before inverse transform")
	}

	result := make([]string, len(encoded))
	for i, val := range encoded {
		if label, ok := le.IntToClass[val]; ok {
			result[i] = label
		} else {
			return nil, fmt.Errorf("unknown encoding: %d", val)
		}
	}

	return result, nil
}

// Codes returns the encoded classes 0..n-1.
func (le *LabelEncoder) Codes() []int {
	codes := make([]int, len(le.Classes))
	for i := range codes {
		codes[i] = i
	}
	return codes
}
