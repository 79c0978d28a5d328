package pls

import (
	"math"

	"github.com/rs/zerolog"
)

// Defaults (single source of truth for zero-value behavior).
const (
	// DefaultTolerance is the relative change in t below which NIPALS stops.
	DefaultTolerance = 1e-6

	// DefaultMaxIter caps NIPALS iterations per component.
	DefaultMaxIter = 100

	// DefaultScale leaves X columns unscaled (centering only).
	DefaultScale = false
)

// ---------- Internal panic messages ----------

const (
	panicToleranceInvalid = "pls: WithTolerance: tol must be finite and > 0"
	panicMaxIterInvalid   = "pls: WithMaxIter: maxIter must be >= 2"
)

// Option mutates internal options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tol     float64
	maxIter int
	scale   bool
	logger  zerolog.Logger
}

// WithTolerance sets the NIPALS convergence tolerance.
// Panics when tol is not finite or not positive.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIter sets the per-component iteration cap. Panics when maxIter < 2:
// convergence is judged between two successive iterates.
func WithMaxIter(maxIter int) Option {
	if maxIter < 2 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = maxIter }
}

// WithScale toggles unit-variance scaling of X columns after centering.
func WithScale(scale bool) Option {
	return func(o *Options) { o.scale = scale }
}

// WithLogger routes per-component diagnostics to logger (debug level).
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		tol:     DefaultTolerance,
		maxIter: DefaultMaxIter,
		scale:   DefaultScale,
		logger:  zerolog.Nop(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
