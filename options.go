package plsda

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/plsda/cv"
	"github.com/katalvlaran/plsda/pls"
	"github.com/katalvlaran/plsda/preprocess"
)

const panicWorkersInvalid = "plsda: WithWorkers: workers must be >= 1"

// Option configures the entry points of this package.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	logger  zerolog.Logger
	fit     []pls.Option
	workers int // 0 keeps the cv default
}

// WithLogger sends diagnostics of every stage to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

// WithFitOptions forwards engine options (scaling, tolerance, iteration cap) to
// every fit, including the per-fold fits of cross-validation.
func WithFitOptions(opts ...pls.Option) Option {
	return func(o *Options) { o.fit = append(o.fit, opts...) }
}

// WithWorkers bounds the folds fitted concurrently during cross-validation.
// Panics when workers < 1.
func WithWorkers(workers int) Option {
	if workers < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = workers }
}

func gatherOptions(user ...Option) Options {
	o := Options{logger: zerolog.Nop()}
	for _, set := range user {
		set(&o)
	}

	return o
}

func (o Options) fitOptions() []pls.Option {
	return append([]pls.Option{pls.WithLogger(o.logger)}, o.fit...)
}

func (o Options) cvOptions() []cv.Option {
	out := []cv.Option{cv.WithLogger(o.logger), cv.WithFitOptions(o.fit...)}
	if o.workers > 0 {
		out = append(out, cv.WithWorkers(o.workers))
	}

	return out
}

func (o Options) preprocessOptions() []preprocess.Option {
	return []preprocess.Option{preprocess.WithLogger(o.logger)}
}
