package preprocess

import (
	"fmt"

	"github.com/katalvlaran/plsda/matrix"
)

// Run applies the full chain to raw under cfg and returns the processed matrix.
// The raw matrix is never modified.
func Run(raw *matrix.FeatureMatrix, cfg Config, opts ...Option) (*matrix.FeatureMatrix, error) {
	if raw == nil {
		return nil, fmt.Errorf("preprocess: Run: %w", matrix.ErrNilMatrix)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	log := o.logger.With().Str("component", "preprocess").Logger()
	log.Debug().Int("features", raw.NumFeatures()).Int("samples", raw.NumSamples()).Msg("raw matrix")

	m, err := FilterMissing(raw, cfg.MissingThreshold)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("features", m.NumFeatures()).Float64("threshold", cfg.MissingThreshold).Msg("filtered missing")

	if m, err = ImputeHalfMinimum(m); err != nil {
		return nil, err
	}
	log.Debug().Msg("imputed half minimum")

	if !cfg.SkipLog {
		if m, err = LogTransform(m, cfg.LogOffset, cfg.LogBase); err != nil {
			return nil, err
		}
		log.Debug().Float64("base", cfg.LogBase).Float64("offset", cfg.LogOffset).Msg("log transformed")
	}

	if !cfg.SkipNormalize {
		if m, err = NormalizeMedian(m); err != nil {
			return nil, err
		}
		log.Debug().Msg("median normalized")
	}

	if m, err = SelectTopVariance(m, cfg.TopVarianceCount); err != nil {
		return nil, err
	}
	log.Debug().Int("features", m.NumFeatures()).Int("top", cfg.TopVarianceCount).Msg("selected top variance")

	return m, nil
}
