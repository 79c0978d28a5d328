package preprocess

import "github.com/rs/zerolog"

// Option configures Run.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	logger zerolog.Logger
}

// WithLogger routes per-stage diagnostics to logger (debug level).
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

func gatherOptions(user ...Option) Options {
	o := Options{logger: zerolog.Nop()}
	for _, set := range user {
		set(&o)
	}

	return o
}
