package clustering

import "github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSeed sets the seed of the initialisation generator.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithMaxIterations sets the iteration cap. Fit rejects a non-positive cap.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		e.maxIterations = n
	}
}

// WithRestarts sets how many seeded initialisations are tried. The run with
// the lowest inertia is kept.
func WithRestarts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.restarts = n
		}
	}
}

// WithLogger sets the logger used for per-fit diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
