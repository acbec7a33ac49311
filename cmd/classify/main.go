package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/imatr/Source-language-prediction/internal/experiment"
	"github.com/imatr/Source-language-prediction/internal/features"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	configFile   string
	balance      bool
	evaluatePath string
	featureKind  string
	folds        int
	languages    []string
	algorithm    string
	seed         int64
	workers      int
	top          int
	reportPath   string
	resultsCSV   string
	verbose      bool
}

func newLogger(verbose bool) *zap.SugaredLogger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(os.Stderr), level)
	return zap.New(core).Sugar()
}

// buildConfig starts from the config file, when given, and applies every flag
// the user set explicitly.
func buildConfig(cmd *cobra.Command, fs afero.Fs, opts *options, path string) (experiment.Config, error) {
	config := experiment.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := experiment.LoadConfig(fs, opts.configFile)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if path != "" {
		config.Path = path
	}

	flags := cmd.Flags()
	if flags.Changed("balance") {
		config.Balance = opts.balance
	}
	if flags.Changed("evaluate") {
		config.EvaluatePath = opts.evaluatePath
	}
	if flags.Changed("features") || opts.configFile == "" {
		kind, err := features.ParseKind(opts.featureKind)
		if err != nil {
			return config, err
		}
		config.Features = kind
	}
	if flags.Changed("folds") {
		config.FoldCount = opts.folds
	}
	if flags.Changed("languages") {
		config.Languages = opts.languages
	}
	if flags.Changed("algorithm") {
		config.Model.Algorithm = opts.algorithm
	}
	if flags.Changed("seed") {
		config.Seed = opts.seed
	}
	if flags.Changed("workers") {
		config.Workers = opts.workers
	}
	if flags.Changed("top") {
		config.TopFeatures = opts.top
	}
	if flags.Changed("report") {
		config.ReportPath = opts.reportPath
	}
	if flags.Changed("results-csv") {
		config.ResultsCSV = opts.resultsCSV
	}

	return config, nil
}

func newRootCmd(fs afero.Fs, stdout, stderr io.Writer) (*cobra.Command, *options) {
	opts := &options{}
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	cmd := &cobra.Command{
		Use:   "classify [flags] PATH",
		Short: "cross-validate a native language classifier over tagged text",
		Long: "classify trains a linear classifier on n-grams of part-of-speech tags or tokens.\n" +
			"PATH holds one directory per language, each with one sample per file.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			config, err := buildConfig(cmd, fs, opts, path)
			if err != nil {
				return err
			}

			logger := newLogger(opts.verbose)
			defer logger.Sync()

			fmt.Fprintf(stderr, "%s %s features from %s\n", cyan("Classifying"), config.Features, config.Path)
			result, err := experiment.NewRunner(config, fs, logger, stdout).Run()
			if err != nil {
				return err
			}

			fmt.Fprintf(stderr, "%s %d folds over %d samples, accuracy %.4f\n",
				green("Done:"), len(result.CV.Folds), len(result.CV.PooledTrue), result.CV.Pooled.Accuracy)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML config file; flags given explicitly override it")
	flags.BoolVarP(&opts.balance, "balance", "b", false, "truncate every class to the size of the smallest class")
	flags.StringVarP(&opts.evaluatePath, "evaluate", "e", "", "held-out directory with the same layout as PATH")
	flags.StringVarP(&opts.featureKind, "features", "f", features.POS.String(), "feature kind: "+kindNames())
	flags.IntVarP(&opts.folds, "folds", "k", 10, "number of cross-validation folds")
	flags.StringSliceVarP(&opts.languages, "languages", "l", nil, "class labels (default: subdirectories of PATH)")
	flags.StringVar(&opts.algorithm, "algorithm", "linear_svc", "classifier: linear_svc, bayes or knn")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for fold assignment")
	flags.IntVar(&opts.workers, "workers", 4, "folds evaluated in parallel (1 runs serially)")
	flags.IntVar(&opts.top, "top", 10, "informative features listed per class")
	flags.StringVar(&opts.reportPath, "report", "", "write the report to this file instead of stdout")
	flags.StringVar(&opts.resultsCSV, "results-csv", "", "write a per-fold summary CSV to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd, opts
}

func kindNames() string {
	var names []string
	for _, k := range features.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func main() {
	cmd, _ := newRootCmd(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}
