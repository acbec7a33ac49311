package data

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const maxLineSize = 4 * 1024 * 1024

// Sample is one input file: its class label, its path and the tags of all of
// its lines in order.
type Sample struct {
	Label string
	Path  string
	Tags  []string
}

// SampleRef identifies a sample file before it is read.
type SampleRef struct {
	Label string
	Path  string
}

// Refs flattens a selection into sample references, ordered by label as
// given and then by path.
func Refs(selection map[string][]string, labels []string) []SampleRef {
	var refs []SampleRef
	for _, label := range labels {
		for _, path := range selection[label] {
			refs = append(refs, SampleRef{Label: label, Path: path})
		}
	}
	return refs
}

type SampleReader struct {
	fs afero.Fs
}

func NewSampleReader(fs afero.Fs) *SampleReader {
	return &SampleReader{fs: fs}
}

// Read loads one sample. Every line is split on whitespace and the tags of
// all lines are concatenated; empty files yield no tags.
func (r *SampleReader) Read(ref SampleRef) (Sample, error) {
	file, err := r.fs.Open(ref.Path)
	if err != nil {
		return Sample{}, errors.Wrapf(err, "opening sample %s", ref.Path)
	}
	defer file.Close()

	var tags []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		tags = append(tags, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return Sample{}, errors.Wrapf(err, "reading sample %s", ref.Path)
	}

	return Sample{Label: ref.Label, Path: ref.Path, Tags: tags}, nil
}

// ReadAll loads every referenced sample in order. progress, when not nil, is
// called after each batch with the number of samples read so far.
func (r *SampleReader) ReadAll(refs []SampleRef, batchSize int, progress func(done, total int)) ([]Sample, error) {
	samples := make([]Sample, 0, len(refs))
	bp := NewBatchProcessor(batchSize)

	err := bp.ProcessBatches(refs, func(batch []SampleRef) error {
		for _, ref := range batch {
			sample, err := r.Read(ref)
			if err != nil {
				return err
			}
			samples = append(samples, sample)
		}
		if progress != nil {
			progress(len(samples), len(refs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// Documents returns the tag sequences of the samples.
func Documents(samples []Sample) [][]string {
	docs := make([][]string, len(samples))
	for i, s := range samples {
		docs[i] = s.Tags
	}
	return docs
}

// Labels returns the class labels of the samples.
func Labels(samples []Sample) []string {
	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
	}
	return labels
}
