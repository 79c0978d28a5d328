package preprocess

import (
	"fmt"
	"math"

	"github.com/katalvlaran/plsda/plserr"
)

// Defaults for Config; DefaultConfig mirrors them.
const (
	DefaultMissingThreshold = 0.5
	DefaultLogOffset        = 1.0
	DefaultLogBase          = 2.0
	DefaultTopVarianceCount = 0 // keep all
)

// Config enumerates the preprocessing parameters.
type Config struct {
	// MissingThreshold drops a feature whose missing fraction is ≥ this value. Range (0, 1].
	MissingThreshold float64 `yaml:"missing_threshold" toml:"missing_threshold"`
	// LogOffset is added before taking the logarithm.
	LogOffset float64 `yaml:"log_offset" toml:"log_offset"`
	// LogBase is the logarithm base; must be positive and not 1.
	LogBase float64 `yaml:"log_base" toml:"log_base"`
	// TopVarianceCount keeps this many highest-variance features; 0 keeps all.
	TopVarianceCount int `yaml:"top_variance_count" toml:"top_variance_count"`
	// SkipLog disables LogTransform (data already on a log scale).
	SkipLog bool `yaml:"skip_log" toml:"skip_log"`
	// SkipNormalize disables NormalizeMedian.
	SkipNormalize bool `yaml:"skip_normalize" toml:"skip_normalize"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MissingThreshold: DefaultMissingThreshold,
		LogOffset:        DefaultLogOffset,
		LogBase:          DefaultLogBase,
		TopVarianceCount: DefaultTopVarianceCount,
	}
}

// Validate reports the first parameter outside its domain as ErrInvalidConfiguration.
func (c Config) Validate() error {
	if err := validateThreshold(c.MissingThreshold); err != nil {
		return err
	}
	if !c.SkipLog {
		if err := validateLog(c.LogOffset, c.LogBase); err != nil {
			return err
		}
	}
	if c.TopVarianceCount < 0 {
		return fmt.Errorf("preprocess: top variance count %d: %w", c.TopVarianceCount, plserr.ErrInvalidConfiguration)
	}

	return nil
}

func validateThreshold(th float64) error {
	if math.IsNaN(th) || th <= 0 || th > 1 {
		return fmt.Errorf("preprocess: missing threshold %g outside (0,1]: %w", th, plserr.ErrInvalidConfiguration)
	}

	return nil
}

func validateLog(offset, base float64) error {
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return fmt.Errorf("preprocess: log offset %g: %w", offset, plserr.ErrInvalidConfiguration)
	}
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 || base == 1 {
		return fmt.Errorf("preprocess: log base %g: %w", base, plserr.ErrInvalidConfiguration)
	}

	return nil
}
