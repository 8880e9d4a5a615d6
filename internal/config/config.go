// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and JOBREC_* environment variables on top.
// - Errors wrap this package's sentinels.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/pipeline"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the encoder: console or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ClusterCount is k for k-means.
	ClusterCount int `koanf:"cluster_count"`

	// MaxIterations caps each k-means run.
	MaxIterations int `koanf:"max_iterations"`

	// Restarts is the number of seeded initialisations tried per build.
	Restarts int `koanf:"restarts"`

	// Seed drives centroid initialisation.
	Seed int64 `koanf:"seed"`

	// StdDivisor is "population" (N) or "sample" (N-1).
	StdDivisor string `koanf:"std_divisor"`

	// CatalogDB is the SQLite file holding jobs and candidates. Empty keeps
	// the catalog in memory.
	CatalogDB string `koanf:"catalog_db"`

	// BusyTimeoutMs is how long SQLite waits on a locked catalog.
	BusyTimeoutMs int `koanf:"busy_timeout_ms"`

	// JobsCSV and CandidatesCSV are optional files imported at start.
	JobsCSV       string `koanf:"jobs_csv"`
	CandidatesCSV string `koanf:"candidates_csv"`

	// WorkerCount sets the number of batch match workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory match queue.
	QueueSize int `koanf:"queue_size"`

	// RecommendationLimit caps the jobs returned per match; 0 means all.
	RecommendationLimit int `koanf:"recommendation_limit"`

	// CurvePoints is the number of samples per density curve.
	CurvePoints int `koanf:"curve_points"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	def := pipeline.DefaultConfig()
	return &Config{
		LogLevel:      "info",
		LogFormat:     "console",
		Addr:          ":9080",
		ClusterCount:  def.K,
		MaxIterations: def.MaxIterations,
		Restarts:      def.Restarts,
		Seed:          def.Seed,
		StdDivisor:    def.Divisor.String(),
		CatalogDB:     "jobrec.db",
		BusyTimeoutMs: 5000,
		WorkerCount:   runtime.NumCPU(),
		QueueSize:     10_000,
		CurvePoints:   def.CurvePoints,
	}
}

// Validate checks settings that would make the service unusable.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ClusterCount <= 0:
		return fmt.Errorf("%w: cluster_count must be positive", ErrInvalidConfig)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive", ErrInvalidConfig)
	case c.Restarts <= 0:
		return fmt.Errorf("%w: restarts must be positive", ErrInvalidConfig)
	case c.BusyTimeoutMs < 0:
		return fmt.Errorf("%w: busy_timeout_ms must not be negative", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.RecommendationLimit < 0:
		return fmt.Errorf("%w: recommendation_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := density.ParseDivisor(c.StdDivisor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log_format must be console or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Pipeline converts the clustering settings into a build configuration.
func (c *Config) Pipeline() pipeline.Config {
	div, _ := density.ParseDivisor(c.StdDivisor)
	return pipeline.Config{
		K:             c.ClusterCount,
		MaxIterations: c.MaxIterations,
		Restarts:      c.Restarts,
		Seed:          c.Seed,
		Divisor:       div,
		CurvePoints:   c.CurvePoints,
	}
}
