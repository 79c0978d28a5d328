package cv

import (
	"runtime"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/plsda/pls"
)

const panicWorkersInvalid = "cv: WithWorkers: workers must be >= 1"

// Option mutates internal options. Constructors panic only on nonsensical values.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	workers int
	logger  zerolog.Logger
	fit     []pls.Option
}

// WithWorkers bounds the number of folds fitted concurrently; 1 runs serially.
// Panics when workers < 1.
func WithWorkers(workers int) Option {
	if workers < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = workers }
}

// WithLogger routes fold and round diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithFitOptions forwards options to every per-fold pls.Fit.
func WithFitOptions(opts ...pls.Option) Option {
	return func(o *Options) { o.fit = append(o.fit, opts...) }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		workers: runtime.NumCPU(),
		logger:  zerolog.Nop(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
