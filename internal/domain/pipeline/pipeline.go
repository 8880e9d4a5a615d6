// Package pipeline ties encoding, clustering and density fitting into one
// build step and exposes the result as an immutable Snapshot for matching.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/clustering"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/encoding"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// Config is the build configuration.
type Config struct {
	K             int
	MaxIterations int
	Restarts      int
	Seed          int64
	Divisor       density.Divisor
	CurvePoints   int
}

// DefaultConfig returns the default build configuration.
func DefaultConfig() Config {
	return Config{
		K:             4,
		MaxIterations: clustering.DefaultMaxIterations,
		Restarts:      clustering.DefaultRestarts,
		Seed:          clustering.DefaultSeed,
		Divisor:       density.Population,
		CurvePoints:   density.DefaultCurvePoints,
	}
}

// Validate reports a configuration error for settings no build could use.
func (c Config) Validate() error {
	switch {
	case c.K <= 0:
		return fmt.Errorf("%w: cluster count must be positive, got %d", model.ErrConfiguration, c.K)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: iteration cap must be positive, got %d", model.ErrConfiguration, c.MaxIterations)
	case c.Restarts <= 0:
		return fmt.Errorf("%w: restarts must be positive, got %d", model.ErrConfiguration, c.Restarts)
	case c.Divisor != density.Population && c.Divisor != density.Sample:
		return fmt.Errorf("%w: unknown std divisor %v", model.ErrConfiguration, c.Divisor)
	}
	return nil
}

// Option applies a configuration option to a build.
type Option func(*builder)

type builder struct {
	log logger.Logger
}

// WithLogger sets the logger used during the build.
func WithLogger(l logger.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// Build encodes jobs, clusters them and fits per-cluster densities. It
// returns either a complete Snapshot or an error.
func Build(ctx context.Context, jobs []model.JobRecord, cfg Config, opts ...Option) (*Snapshot, error) {
	b := &builder{log: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog := copyJobs(jobs)
	m, params, err := encoding.Encode(catalog)
	if err != nil {
		return nil, err
	}

	engine := clustering.New(
		clustering.WithSeed(cfg.Seed),
		clustering.WithMaxIterations(cfg.MaxIterations),
		clustering.WithRestarts(cfg.Restarts),
		clustering.WithLogger(b.log),
	)
	fit, err := engine.Fit(ctx, m, cfg.K)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(catalog))
	for i, j := range catalog {
		values[i] = j.YearsOfExperience
	}
	estimator := density.New(density.WithDivisor(cfg.Divisor))
	densities := estimator.Estimate(values, fit.Labels, cfg.K)

	s := &Snapshot{
		RunID:      uuid.New(),
		BuiltAt:    time.Now(),
		Jobs:       catalog,
		Params:     params,
		Labels:     fit.Labels,
		Clusters:   fit.Clusters,
		Densities:  densities,
		Iterations: fit.Iterations,
		Converged:  fit.Converged,
		Inertia:    fit.Inertia,
		Config:     cfg,
		index:      make(map[string]int, len(catalog)),
	}
	for i, j := range catalog {
		s.index[j.ID] = i
	}

	b.log.Info(ctx, "catalog clustered",
		logger.String("run_id", s.RunID.String()),
		logger.Int("jobs", len(catalog)),
		logger.Int("clusters", cfg.K),
		logger.Int64("seed", cfg.Seed),
		logger.Int("eligible_clusters", len(densities)),
		logger.Int("iterations", fit.Iterations),
		logger.Bool("converged", fit.Converged),
		logger.String("std_divisor", estimator.Divisor().String()))
	if !fit.Converged {
		b.log.Warn(ctx, "k-means hit the iteration cap", logger.Int("max_iterations", cfg.MaxIterations))
	}
	return s, nil
}

func copyJobs(jobs []model.JobRecord) []model.JobRecord {
	out := make([]model.JobRecord, len(jobs))
	for i, j := range jobs {
		out[i] = j
		if j.Skills != nil {
			out[i].Skills = append([]string(nil), j.Skills...)
		}
	}
	return out
}
