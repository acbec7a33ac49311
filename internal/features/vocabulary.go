package features

import (
	"fmt"
	"sort"
)

// Analyzer turns the tags of one sample into its feature strings.
type Analyzer func(tags []string) []string

// NgramAnalyzer extracts all n-grams in rng.
func NgramAnalyzer(rng NgramRange) Analyzer {
	return func(tags []string) []string {
		return Extract(tags, rng)
	}
}

// VocabularyEmptyError is returned when no sample produced a single feature.
type VocabularyEmptyError struct {
	Samples int
}

func (e *VocabularyEmptyError) Error() string {
	return fmt.Sprintf("no features extracted from %d samples", e.Samples)
}

// Vocabulary maps feature strings to vector indices. Indices follow the
// lexicographic order of the features.
type Vocabulary struct {
	index map[string]int
	terms []string
}

func newVocabulary(terms []string) *Vocabulary {
	sort.Strings(terms)
	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return &Vocabulary{index: index, terms: terms}
}

func (v *Vocabulary) Len() int {
	return len(v.terms)
}

func (v *Vocabulary) Index(term string) (int, bool) {
	idx, ok := v.index[term]
	return idx, ok
}

func (v *Vocabulary) Term(idx int) string {
	return v.terms[idx]
}

// Terms returns the features in index order. The slice must not be modified.
func (v *Vocabulary) Terms() []string {
	return v.terms
}

// Vectorizer builds a vocabulary over a set of samples and encodes samples as
// binary presence vectors over it.
type Vectorizer struct {
	Analyzer   Analyzer
	Vocabulary *Vocabulary
}

func NewVectorizer(kind Kind) *Vectorizer {
	return &Vectorizer{Analyzer: NgramAnalyzer(kind.Ngrams())}
}

func NewVectorizerWithAnalyzer(analyzer Analyzer) *Vectorizer {
	return &Vectorizer{Analyzer: analyzer}
}

// Fit builds the vocabulary from every feature of every document.
func (vz *Vectorizer) Fit(docs [][]string) error {
	_, err := vz.fit(docs)
	return err
}

func (vz *Vectorizer) fit(docs [][]string) ([][]string, error) {
	extracted := make([][]string, len(docs))
	seen := make(map[string]struct{})
	var terms []string
	for i, doc := range docs {
		extracted[i] = vz.Analyzer(doc)
		for _, term := range extracted[i] {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
	}

	if len(terms) == 0 {
		return nil, &VocabularyEmptyError{Samples: len(docs)}
	}

	vz.Vocabulary = newVocabulary(terms)
	return extracted, nil
}

// Transform encodes one document. Features missing from the vocabulary are
// dropped.
func (vz *Vectorizer) Transform(doc []string) (Vector, error) {
	if vz.Vocabulary == nil {
		return Vector{}, fmt.Errorf("vectorizer must be fitted before transform")
	}
	return vz.encode(vz.Analyzer(doc)), nil
}

func (vz *Vectorizer) TransformAll(docs [][]string) ([]Vector, error) {
	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		v, err := vz.Transform(doc)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// FitTransform fits the vocabulary and encodes the same documents, analysing
// each document once.
func (vz *Vectorizer) FitTransform(docs [][]string) ([]Vector, error) {
	extracted, err := vz.fit(docs)
	if err != nil {
		return nil, err
	}
	vectors := make([]Vector, len(docs))
	for i, terms := range extracted {
		vectors[i] = vz.encode(terms)
	}
	return vectors, nil
}

func (vz *Vectorizer) encode(terms []string) Vector {
	indices := make([]int, 0, len(terms))
	for _, term := range terms {
		if idx, ok := vz.Vocabulary.Index(term); ok {
			indices = append(indices, idx)
		}
	}
	return NewBinaryVector(vz.Vocabulary.Len(), indices)
}
