// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/mq/queue"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/mq/worker"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/repository"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/pipeline"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/metrics"
)

const defaultQueueSize = 10_000

// Service owns the catalog store, the current clustering snapshot and the
// batch matching pool.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	matchQueue *queue.InMemoryQueue
	workerPool *worker.Pool
	snapshot   atomic.Pointer[pipeline.Snapshot]

	// rebuilds are serialised; matches never wait on them
	buildMu sync.Mutex

	// Configuration
	workerCount   int
	queueSize     int
	limit         int
	pipelineCfg   pipeline.Config
	jobsFile      string
	candidateFile string

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the catalog store. The store stays owned by the caller,
// which closes it after Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWorkerCount sets the number of batch match workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of pending match tasks.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPipelineConfig sets the clustering settings used by Rebuild.
func WithPipelineConfig(cfg pipeline.Config) Option { //nolint:gocritic // hugeParam: options are built once
	return func(s *Service) {
		s.pipelineCfg = cfg
	}
}

// WithRecommendationLimit caps the jobs returned per match. Zero means all.
func WithRecommendationLimit(limit int) Option {
	return func(s *Service) {
		if limit >= 0 {
			s.limit = limit
		}
	}
}

// WithSeedFiles sets CSV files imported into the store on Start. Either path
// may be empty.
func WithSeedFiles(jobs, candidates string) Option {
	return func(s *Service) {
		s.jobsFile = jobs
		s.candidateFile = candidates
	}
}

// New creates a new service with the given options.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   defaultQueueSize,
		pipelineCfg: pipeline.DefaultConfig(),
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Start imports seed files, builds the first snapshot when the catalog is
// not empty and starts the worker pool. A failed first build is logged and
// leaves the service serving without a snapshot.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting recommendation service...")

	if err := s.importSeeds(ctx); err != nil {
		return err
	}

	s.matchQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.workerPool = worker.NewPool(s.workerCount, s.matchQueue, s, s.logger)

	// workers outlive the start request
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.workerPool.Start(runCtx)
	s.started = true

	if s.store.Count(ctx) > 0 {
		if _, err := s.Rebuild(ctx); err != nil {
			s.logger.Error(ctx, "initial build failed", logger.Error(err))
		}
	}

	s.logger.Info(ctx, "recommendation service started",
		logger.Int("workerCount", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("clusterCount", s.pipelineCfg.K),
	)
	return nil
}

// Stop drains the worker pool. The store and the current snapshot are left
// in place, so the service may be started again.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(ctx, "stopping recommendation service...")

	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "recommendation service stopped")
}

// Store exposes the catalog store.
func (s *Service) Store() repository.Store {
	return s.store
}

// Snapshot returns the current build, or nil before the first build.
func (s *Service) Snapshot() *pipeline.Snapshot {
	return s.snapshot.Load()
}

// Rebuild clusters the stored catalog and swaps in the new snapshot. Matches
// already running keep the snapshot they loaded.
func (s *Service) Rebuild(ctx context.Context) (*pipeline.Snapshot, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := time.Now()
	jobs, err := s.store.Jobs(ctx)
	if err != nil {
		metrics.RecordBuildFailure("store")
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	snap, err := pipeline.Build(ctx, jobs, s.pipelineCfg, pipeline.WithLogger(s.logger))
	if err != nil {
		metrics.RecordBuildFailure(model.Kind(err))
		s.logger.Warn(ctx, "build failed",
			logger.String("kind", model.Kind(err)),
			logger.Error(err))
		return nil, err
	}

	assignments := make([]repository.Assignment, len(snap.Jobs))
	for i, j := range snap.Jobs {
		assignments[i] = repository.Assignment{JobID: j.ID, ClusterID: snap.Labels[i]}
	}
	if err := s.store.SaveAssignments(ctx, snap.RunID.String(), assignments); err != nil {
		metrics.RecordBuildFailure("store")
		return nil, fmt.Errorf("save assignments: %w", err)
	}

	s.snapshot.Store(snap)

	sizes := make([]int, len(snap.Clusters))
	for i, c := range snap.Clusters {
		sizes[i] = len(c.Members)
	}
	metrics.RecordBuild(float64(time.Since(start).Milliseconds()), snap.Iterations, snap.Inertia)
	metrics.UpdateClusterSizes(sizes)
	metrics.UpdateEligibleClusters(len(snap.Densities))

	return snap, nil
}

// Match recommends jobs for one candidate against the current snapshot.
func (s *Service) Match(ctx context.Context, candidate model.Candidate) (types.Recommendation, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return types.Recommendation{}, err
	}

	snap := s.snapshot.Load()
	if snap == nil {
		metrics.RecordMatch("no_snapshot", msSince(start))
		return types.Recommendation{}, ErrNoSnapshot
	}

	rec, err := snap.Match(candidate)
	if err != nil {
		metrics.RecordMatch(model.Kind(err), msSince(start))
		return types.Recommendation{}, err
	}
	if s.limit > 0 && len(rec.Jobs) > s.limit {
		rec.Jobs = rec.Jobs[:s.limit]
	}

	metrics.RecordMatch("matched", msSince(start))
	s.logger.Debug(ctx, "candidate matched",
		logger.String("candidateID", candidate.ID),
		logger.Float64("experience", candidate.YearsOfExperience),
		logger.Int("clusterID", rec.ClusterID),
		logger.Int("jobs", len(rec.Jobs)),
	)
	return rec, nil
}

// RecommendForCandidate looks a stored candidate up and matches it.
func (s *Service) RecommendForCandidate(ctx context.Context, candidateID string) (types.Recommendation, error) {
	c, err := s.store.Candidate(ctx, candidateID)
	if err != nil {
		return types.Recommendation{}, err
	}
	return s.Match(ctx, c)
}

// MatchBatch runs every candidate through the worker pool and returns the
// outcomes in input order. It fails fast with queue.ErrFull when the queue
// has fewer free slots than the batch size.
func (s *Service) MatchBatch(ctx context.Context, candidates []model.Candidate) ([]model.MatchOutcome, error) {
	s.mu.RLock()
	started, q := s.started, s.matchQueue
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	if free := q.Capacity() - q.Len(); len(candidates) > free {
		s.logger.Warn(ctx, "batch rejected",
			logger.Int("size", len(candidates)),
			logger.Int("free", free))
		return nil, fmt.Errorf("batch of %d exceeds %d free slots: %w", len(candidates), free, queue.ErrFull)
	}

	replies := make(chan model.MatchOutcome, len(candidates))
	order := make(map[string]int, len(candidates))
	for i, c := range candidates {
		id := uuid.NewString()
		order[id] = i
		if err := q.Enqueue(ctx, queue.Task{ID: id, Candidate: c, Reply: replies}); err != nil {
			s.logger.Warn(ctx, "batch rejected",
				logger.Int("size", len(candidates)),
				logger.Int("accepted", i),
				logger.Error(err))
			return nil, fmt.Errorf("enqueue candidate %q: %w", c.ID, err)
		}
	}

	out := make([]model.MatchOutcome, len(candidates))
	for range candidates {
		select {
		case o := <-replies:
			out[order[o.TaskID]] = o
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}

// Clusters describes the clusters of the current snapshot.
func (s *Service) Clusters(withCurve bool) ([]types.ClusterSummary, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap.Summaries(withCurve), nil
}

// PlaceJob locates a job posting in the current snapshot without adding it
// to the catalog.
func (s *Service) PlaceJob(ctx context.Context, job model.JobRecord) (types.Placement, error) { //nolint:gocritic // hugeParam: one record per request
	if err := ctx.Err(); err != nil {
		return types.Placement{}, err
	}
	snap := s.snapshot.Load()
	if snap == nil {
		return types.Placement{}, ErrNoSnapshot
	}
	p, err := snap.Place(job)
	if err != nil {
		return types.Placement{}, err
	}
	s.logger.Debug(ctx, "job placed",
		logger.String("jobID", job.ID),
		logger.Int("clusterID", p.ClusterID),
		logger.Bool("inCatalog", p.InCatalog))
	return p, nil
}

// Assignments returns the persisted labels of a build, in catalog order. It
// returns repository.ErrNotFound for an unknown run.
func (s *Service) Assignments(ctx context.Context, runID string) ([]types.Assignment, error) {
	stored, err := s.store.Assignments(ctx, runID)
	if err != nil {
		return nil, err
	}
	out := make([]types.Assignment, len(stored))
	for i, a := range stored {
		out[i] = types.Assignment{JobID: a.JobID, ClusterID: a.ClusterID}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"clusterCount":   s.pipelineCfg.K,
		"catalogSize":    s.store.Count(ctx),
		"recommendLimit": s.limit,
	}

	if s.started {
		stats["queueLength"] = s.matchQueue.Len()
		stats["queueCapacity"] = s.matchQueue.Capacity()
		stats["activeWorkers"] = s.workerPool.Size()
	}
	if snap := s.snapshot.Load(); snap != nil {
		stats["runID"] = snap.RunID.String()
		stats["builtAt"] = snap.BuiltAt.UTC().Format(time.RFC3339)
		stats["iterations"] = snap.Iterations
		stats["converged"] = snap.Converged
		stats["inertia"] = snap.Inertia
		stats["eligibleClusters"] = len(snap.Densities)
	}
	return stats
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
