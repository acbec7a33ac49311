package data

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DataNotFoundError is returned when a class directory holds no sample files
// while a balanced selection was requested.
type DataNotFoundError struct {
	Label     string
	Dir       string
	Extension string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("no %s files found for class %s in %s", e.Extension, e.Label, e.Dir)
}

// SampleSelector enumerates the sample files of every class below a root
// directory laid out as <root>/<label>/*<extension>.
type SampleSelector struct {
	fs        afero.Fs
	Extension string
	Balance   bool
}

func NewSampleSelector(fs afero.Fs, extension string, balance bool) *SampleSelector {
	return &SampleSelector{
		fs:        fs,
		Extension: extension,
		Balance:   balance,
	}
}

// Select returns the sample paths of every label. Paths are in lexical order.
// With balancing enabled every class is truncated to the first n paths, n
// being the size of the smallest class.
func (s *SampleSelector) Select(root string, labels []string) (map[string][]string, error) {
	selection := make(map[string][]string, len(labels))
	minSize := -1

	for _, label := range labels {
		paths, err := s.List(root, label)
		if err != nil {
			return nil, err
		}
		if s.Balance && len(paths) == 0 {
			return nil, &DataNotFoundError{
				Label:     label,
				Dir:       filepath.Join(root, label),
				Extension: s.Extension,
			}
		}
		if minSize < 0 || len(paths) < minSize {
			minSize = len(paths)
		}
		selection[label] = paths
	}

	if s.Balance {
		for label, paths := range selection {
			selection[label] = paths[:minSize]
		}
	}

	return selection, nil
}

// List returns every file of one class with the selector's extension.
func (s *SampleSelector) List(root, label string) ([]string, error) {
	pattern := filepath.Join(root, label, "*"+s.Extension)
	paths, err := afero.Glob(s.fs, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", pattern)
	}

	files := paths[:0]
	for _, path := range paths {
		info, err := s.fs.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", path)
		}
		if !info.IsDir() {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// DiscoverLabels returns the names of every subdirectory of root, sorted.
// Directories without matching files are kept so that a balanced Select
// reports them instead of skipping the class.
func (s *SampleSelector) DiscoverLabels(root string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", root)
	}

	var labels []string
	for _, entry := range entries {
		if entry.IsDir() {
			labels = append(labels, entry.Name())
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// Counts returns the number of selected samples per label.
func Counts(selection map[string][]string) map[string]int {
	counts := make(map[string]int, len(selection))
	for label, paths := range selection {
		counts[label] = len(paths)
	}
	return counts
}
