// Package worker runs background jobs on a fixed number of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/at-ishikawa/guanwo/internal/config"
)

var (
	ErrQueueFull = errors.New("worker queue is full")
	ErrClosed    = errors.New("worker pool is shut down")
)

// abandonTimeout bounds each Abandon hook called during shutdown.
const abandonTimeout = 5 * time.Second

// Job is a unit of background work.
// Abandon is called instead of Run when the pool shuts down before the job starts.
type Job interface {
	Name() string
	Run(ctx context.Context) error
	Abandon(ctx context.Context)
}

type Pool struct {
	concurrency int
	jobs        chan Job
	logger      *slog.Logger

	mu       sync.RWMutex
	closed   bool
	stopping atomic.Bool

	wg      sync.WaitGroup
	started bool
	cancel  context.CancelFunc
	base    context.Context
}

func NewPool(cfg config.WorkerConfig, logger *slog.Logger) *Pool {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{
		concurrency: concurrency,
		jobs:        make(chan Job, cfg.QueueSize),
		logger:      logger.With("component", "worker_pool"),
		base:        context.Background(),
		cancel:      func() {},
	}
}

// Start launches the workers. Jobs run with a context derived from ctx.
func (p *Pool) Start(ctx context.Context) {
	p.base, p.cancel = context.WithCancel(ctx)
	p.started = true
	p.logger.Info("starting worker pool", "concurrency", p.concurrency, "queue_size", cap(p.jobs))
	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.runLoop(i + 1)
	}
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	select {
	case p.jobs <- job:
		return nil
	default:
		return fmt.Errorf("submit %s: %w", job.Name(), ErrQueueFull)
	}
}

func (p *Pool) runLoop(workerID int) {
	defer p.wg.Done()
	for job := range p.jobs {
		if p.stopping.Load() {
			p.abandon(job)
			continue
		}
		p.run(workerID, job)
	}
}

func (p *Pool) run(workerID int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job panic",
				"worker_id", workerID,
				"job", job.Name(),
				"panic", r,
			)
		}
	}()
	if err := job.Run(p.base); err != nil {
		p.logger.Warn("job failed", "worker_id", workerID, "job", job.Name(), "error", err)
	}
}

func (p *Pool) abandon(job Job) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(p.base), abandonTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("job abandon panic", "job", job.Name(), "panic", r)
		}
	}()
	p.logger.Info("abandoning queued job", "job", job.Name())
	job.Abandon(ctx)
}

// Shutdown stops intake and abandons every job still queued. Running jobs
// may finish until ctx is done, after which their context is cancelled.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.stopping.Store(true)
	close(p.jobs)
	p.mu.Unlock()

	if !p.started {
		for job := range p.jobs {
			p.abandon(job)
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return fmt.Errorf("shutdown worker pool: %w", ctx.Err())
	}
}
