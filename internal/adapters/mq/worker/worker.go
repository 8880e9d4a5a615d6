package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/mq/queue"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Matcher answers one candidate.
type Matcher interface {
	Match(ctx context.Context, candidate model.Candidate) (types.Recommendation, error)
}

// Queue defines how workers receive tasks.
type Queue interface {
	Dequeue() <-chan queue.Task
}

// Worker processes tasks until its queue closes.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// InMemoryWorker matches candidates taken off a Queue.
type InMemoryWorker struct {
	queue   Queue
	matcher Matcher
	name    string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, m Matcher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		matcher:  m,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run consumes tasks until the queue is closed and drained, ctx is done, or
// Shutdown is called.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	tasks := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			w.process(ctx, t)
		}
	}
}

// Shutdown stops the worker without draining.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) process(ctx context.Context, t queue.Task) { //nolint:gocritic // hugeParam: passed by value for channel semantics
	rec, err := w.matcher.Match(ctx, t.Candidate)
	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Debug(ctx, "match failed",
			logger.String("task_id", t.ID),
			logger.String("candidate_id", t.Candidate.ID),
			logger.Error(err))
	} else {
		metrics.RecordWorkerProcessed()
	}

	if t.Reply == nil {
		return
	}
	select {
	case t.Reply <- model.MatchOutcome{TaskID: t.ID, Recommendation: rec, Err: err}:
	case <-ctx.Done():
	}
}

// Pool manages multiple workers on one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count means
// one worker per CPU.
func NewPool(workerCount int, q Queue, m Matcher, l logger.Logger) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	if l == nil {
		l = logger.Nop()
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  l.Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, m,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(l),
		)
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start launches every worker.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the queue and waits for workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
