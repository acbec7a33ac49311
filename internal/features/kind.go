package features

import (
	"fmt"
	"strings"
)

// Kind selects the granularity of the features: which files are read and
// which n-gram lengths are extracted from them.
type Kind int

const (
	POS Kind = iota
	POSUniversal
	Tokens
)

// NgramRange is an inclusive range of n-gram lengths.
type NgramRange struct {
	Min int
	Max int
}

type kindSpec struct {
	name      string
	extension string
	ngrams    NgramRange
}

var kindSpecs = map[Kind]kindSpec{
	Tokens:       {name: "tokens", extension: ".txt", ngrams: NgramRange{Min: 1, Max: 2}},
	POS:          {name: "POS", extension: ".pos", ngrams: NgramRange{Min: 2, Max: 5}},
	POSUniversal: {name: "POS-universal", extension: ".uni", ngrams: NgramRange{Min: 2, Max: 5}},
}

// Kinds lists every feature kind in a stable order.
func Kinds() []Kind {
	return []Kind{Tokens, POS, POSUniversal}
}

// ParseKind maps a kind name ("tokens", "POS", "POS-universal") to its Kind.
// Matching ignores case.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(kindSpecs[k].name, strings.TrimSpace(name)) {
			return k, nil
		}
	}
	names := make([]string, 0, len(kindSpecs))
	for _, k := range Kinds() {
		names = append(names, kindSpecs[k].name)
	}
	return 0, fmt.Errorf("unknown feature kind %q (must be one of %s)", name, strings.Join(names, ", "))
}

func (k Kind) String() string {
	if spec, ok := kindSpecs[k]; ok {
		return spec.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Extension is the file extension of samples holding this kind of tags.
func (k Kind) Extension() string {
	return kindSpecs[k].extension
}

// Ngrams is the n-gram range extracted for this kind.
func (k Kind) Ngrams() NgramRange {
	return kindSpecs[k].ngrams
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindSpecs[k]; !ok {
		return nil, fmt.Errorf("invalid feature kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
