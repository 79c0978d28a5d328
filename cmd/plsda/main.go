// Command plsda runs the PLS-DA pipeline on a feature table and a sample annotation:
// preprocessing, model fit, VIP ranking, cross-validation and an optional label
// permutation test.
//
//	plsda -data intensities.tsv -annotation samples.tsv [-config run.yaml] [-out results/]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/plsda"
	"github.com/katalvlaran/plsda/config"
	"github.com/katalvlaran/plsda/plserr"
	"github.com/katalvlaran/plsda/tableio"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type flags struct {
	data, annotation, config, out string
	components, permutations, top int
	verbose, noColor              bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("plsda", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.data, "data", "", "Feature table: features × samples, tab separated (.csv: comma)")
	fs.StringVar(&f.annotation, "annotation", "", "Sample annotation with sample and class columns")
	fs.StringVar(&f.config, "config", "", "YAML run configuration (defaults when empty)")
	fs.StringVar(&f.out, "out", "", "Directory for vip.csv, scores.csv, cv.csv, predictions.csv")
	fs.IntVar(&f.components, "components", 0, "Override model.components")
	fs.IntVar(&f.permutations, "permutations", -1, "Override permutation.rounds (0 disables)")
	fs.IntVar(&f.top, "top", 10, "VIP entries to print")
	fs.BoolVar(&f.verbose, "verbose", false, "Debug logging")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable coloured output")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.data == "" || f.annotation == "" {
		fs.Usage()
		return f, errors.New("both -data and -annotation are required")
	}
	for _, p := range []*string{&f.data, &f.annotation, &f.config, &f.out} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return f, fmt.Errorf("%s: %w", *p, err)
		}
		*p = expanded
	}

	return f, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	color.NoColor = color.NoColor || f.noColor

	level := zerolog.InfoLevel
	if f.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: f.noColor}).
		Level(level).With().Timestamp().Logger()

	if err = pipeline(ctx, f, stdout, logger); err != nil {
		event := logger.Error().Err(err)
		if hint := failureHint(err); hint != "" {
			event = event.Str("hint", hint)
		}
		event.Msg("plsda failed")
		return exitError
	}

	return exitOK
}

// failureHint names the configuration keys that usually resolve err.
func failureHint(err error) string {
	switch {
	case errors.Is(err, plserr.ErrNonConvergence):
		return "raise model.max_iter, or lower model.components when the classes carry no separating signal"
	case errors.Is(err, plserr.ErrInvalidConfiguration):
		return "check model.components against the sample, feature and class counts"
	default:
		return ""
	}
}

func pipeline(ctx context.Context, f flags, stdout io.Writer, logger zerolog.Logger) error {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return err
		}
	}
	if f.components > 0 {
		cfg.Model.Components = f.components
	}
	if f.permutations >= 0 {
		cfg.Permutation.Rounds = f.permutations
	}
	opts := cfg.Options(logger)

	raw, err := tableio.ReadFeatureFile(f.data)
	if err != nil {
		return err
	}
	ann, err := tableio.ReadAnnotationFile(f.annotation, cfg.Annotation.SampleColumn, cfg.Annotation.ClassColumn)
	if err != nil {
		return err
	}
	labels, err := ann.LabelsFor(raw.SampleIDs())
	if err != nil {
		return err
	}
	logger.Info().Int("features", raw.NumFeatures()).Int("samples", raw.NumSamples()).Msg("tables loaded")

	processed, err := plsda.Preprocess(raw, cfg.Preprocess, opts...)
	if err != nil {
		return err
	}
	model, ranking, err := plsda.FitPLSDA(processed, labels, cfg.Model.Components, opts...)
	if err != nil {
		return err
	}
	scheme, err := cfg.Scheme()
	if err != nil {
		return err
	}
	res, err := plsda.CrossValidate(ctx, processed, labels, cfg.Model.Components, scheme, opts...)
	if err != nil {
		return err
	}

	s := summary{
		features: processed.NumFeatures(),
		model:    model,
		ranking:  ranking,
		cv:       res,
		scheme:   scheme.String(),
		top:      f.top,
	}
	if cfg.Permutation.Rounds > 0 {
		if s.perm, err = plsda.Permute(ctx, processed, labels, cfg.Model.Components, scheme,
			cfg.Permutation.Rounds, cfg.Permutation.Seed, opts...); err != nil {
			return err
		}
	}
	s.print(stdout)

	if f.out == "" {
		return nil
	}

	return export(f.out, model, ranking, res, labels)
}
