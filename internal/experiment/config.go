package experiment

import (
	"path/filepath"
	"strings"

	"github.com/imatr/Source-language-prediction/internal/data"
	"github.com/imatr/Source-language-prediction/internal/evaluation"
	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/imatr/Source-language-prediction/internal/models"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config holds every option of one classification run.
type Config struct {
	Path         string             `yaml:"path"`
	Languages    []string           `yaml:"languages"`
	Balance      bool               `yaml:"balance"`
	Features     features.Kind      `yaml:"feature_kind"`
	FoldCount    int                `yaml:"fold_count"`
	EvaluatePath string             `yaml:"evaluate_path"`
	Seed         int64              `yaml:"seed"`
	Workers      int                `yaml:"workers"`
	TopFeatures  int                `yaml:"top_features"`
	BatchSize    int                `yaml:"batch_size"`
	Model        models.ModelConfig `yaml:"model"`
	ReportPath   string             `yaml:"report_path"`
	ResultsCSV   string             `yaml:"results_csv"`
}

func DefaultConfig() Config {
	return Config{
		Features:    features.POS,
		FoldCount:   10,
		Workers:     4,
		TopFeatures: evaluation.DefaultTopFeatures,
		BatchSize:   data.DefaultBatchSize,
		Model:       models.DefaultConfig(models.AlgorithmLinearSVC),
	}
}

// LoadConfig reads a YAML file over the defaults. Options missing from the
// file keep their default values.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	config := DefaultConfig()

	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return config, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return config, errors.Wrapf(err, "parsing config %s", path)
	}
	return config, nil
}

// Validate checks the options and normalises paths and labels.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return errors.New("no data directory given")
	}
	c.Path = cleanPath(c.Path)
	if c.EvaluatePath != "" {
		c.EvaluatePath = cleanPath(c.EvaluatePath)
	}

	if c.FoldCount < 2 {
		return errors.Errorf("fold count must be at least 2, got %d", c.FoldCount)
	}
	if c.Features.Extension() == "" {
		return errors.Errorf("invalid feature kind %v", c.Features)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TopFeatures < 1 {
		c.TopFeatures = evaluation.DefaultTopFeatures
	}

	labels := make([]string, 0, len(c.Languages))
	seen := make(map[string]bool)
	for _, label := range c.Languages {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	c.Languages = labels

	return nil
}

// cleanPath drops trailing separators, so "data/" and "data" are the same
// directory.
func cleanPath(path string) string {
	return filepath.Clean(strings.TrimSpace(path))
}
