// Package config loads the YAML run configuration of the plsda command.
//
// Every key is optional; absent keys keep the values of Default. Unknown keys are
// rejected so that a typo does not silently fall back to a default. Files ending in
// .toml are read as TOML with the same keys; anything else is YAML.
//
//	preprocess:
//	  missing_threshold: 0.5
//	  log_offset: 1
//	  log_base: 2
//	  top_variance_count: 500
//	model:
//	  components: 2
//	  scale: false
//	validation:
//	  folds: 0            # 0 = leave-one-out
//	  assignment: interleaved
//	  workers: 4
//	permutation:
//	  rounds: 200
//	  seed: 42
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/plsda"
	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/pls"
	"github.com/katalvlaran/plsda/plserr"
	"github.com/katalvlaran/plsda/preprocess"
)

// Config is the full run configuration.
type Config struct {
	Preprocess  preprocess.Config `yaml:"preprocess" toml:"preprocess"`
	Model       Model             `yaml:"model" toml:"model"`
	Validation  Validation        `yaml:"validation" toml:"validation"`
	Permutation Permutation       `yaml:"permutation" toml:"permutation"`
	Annotation  Annotation        `yaml:"annotation" toml:"annotation"`
}

// Model holds engine parameters.
type Model struct {
	Components int     `yaml:"components" toml:"components"`
	Scale      bool    `yaml:"scale" toml:"scale"`
	Tolerance  float64 `yaml:"tolerance" toml:"tolerance"`
	// MaxIter caps NIPALS iterations per component. Multi-class data with several
	// components can need more than the default 100 to reach the tolerance.
	MaxIter    int     `yaml:"max_iter" toml:"max_iter"`
}

// Validation holds cross-validation parameters.
type Validation struct {
	Folds      int    `yaml:"folds" toml:"folds"` // 0 = leave-one-out
	Assignment string `yaml:"assignment" toml:"assignment"`
	Workers    int    `yaml:"workers" toml:"workers"` // 0 = one per CPU
}

// Permutation holds permutation-test parameters; Rounds == 0 skips the test.
type Permutation struct {
	Rounds int   `yaml:"rounds" toml:"rounds"`
	Seed   int64 `yaml:"seed" toml:"seed"`
}

// Annotation names the sample and class columns of the annotation table.
type Annotation struct {
	SampleColumn string `yaml:"sample_column" toml:"sample_column"`
	ClassColumn  string `yaml:"class_column" toml:"class_column"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Preprocess: preprocess.DefaultConfig(),
		Model: Model{
			Components: 2,
			Tolerance:  pls.DefaultTolerance,
			MaxIter:    pls.DefaultMaxIter,
		},
		Validation: Validation{Assignment: cv.Contiguous.String()},
		Annotation: Annotation{SampleColumn: "sample", ClassColumn: "class"},
	}
}

// Load reads and validates the configuration file at path, TOML for a .toml
// extension and YAML otherwise.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	cfg, err := parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML from r over Default and validates the result. An empty
// document yields Default.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w: %w", err, plserr.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseTOML is Parse for TOML input.
func ParseTOML(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w: %w", err, plserr.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first value outside its domain as ErrInvalidConfiguration.
func (c Config) Validate() error {
	if err := c.Preprocess.Validate(); err != nil {
		return err
	}
	if c.Model.Components < 1 {
		return fmt.Errorf("config: model.components %d: %w", c.Model.Components, plserr.ErrInvalidConfiguration)
	}
	if t := c.Model.Tolerance; math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return fmt.Errorf("config: model.tolerance %g: %w", t, plserr.ErrInvalidConfiguration)
	}
	if c.Model.MaxIter < 2 {
		return fmt.Errorf("config: model.max_iter %d: %w", c.Model.MaxIter, plserr.ErrInvalidConfiguration)
	}
	if f := c.Validation.Folds; f != 0 && f < 2 {
		return fmt.Errorf("config: validation.folds %d (0 or >= 2): %w", f, plserr.ErrInvalidConfiguration)
	}
	if _, err := cv.ParseAssignment(c.Validation.Assignment); err != nil {
		return fmt.Errorf("config: validation.assignment: %w", err)
	}
	if c.Validation.Workers < 0 {
		return fmt.Errorf("config: validation.workers %d: %w", c.Validation.Workers, plserr.ErrInvalidConfiguration)
	}
	if c.Permutation.Rounds < 0 {
		return fmt.Errorf("config: permutation.rounds %d: %w", c.Permutation.Rounds, plserr.ErrInvalidConfiguration)
	}

	return nil
}

// Scheme returns the cross-validation scheme.
func (c Config) Scheme() (cv.Scheme, error) {
	if c.Validation.Folds == 0 {
		return cv.LeaveOneOut(), nil
	}
	a, err := cv.ParseAssignment(c.Validation.Assignment)
	if err != nil {
		return cv.Scheme{}, err
	}

	return cv.KFold(c.Validation.Folds, a), nil
}

// Options returns the entry-point options for this configuration.
func (c Config) Options(logger zerolog.Logger) []plsda.Option {
	opts := []plsda.Option{
		plsda.WithLogger(logger),
		plsda.WithFitOptions(
			pls.WithScale(c.Model.Scale),
			pls.WithTolerance(c.Model.Tolerance),
			pls.WithMaxIter(c.Model.MaxIter),
		),
	}
	if c.Validation.Workers > 0 {
		opts = append(opts, plsda.WithWorkers(c.Validation.Workers))
	}

	return opts
}
