// Package worker runs background jobs on a fixed set of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/metrics"
)

// ErrPoolStopped is returned by Submit once Stop has been called
var ErrPoolStopped = errors.New("worker pool stopped")

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a plain function to Job
type JobFunc func(ctx context.Context) error

func (f JobFunc) Process(ctx context.Context) error { return f(ctx) }

// Pool feeds queued jobs to a fixed number of workers. Each run gets its own
// timeout and request ID so job logs can be correlated.
type Pool struct {
	workers    int
	queue      chan Job
	jobTimeout time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	wg        sync.WaitGroup
}

// Option customizes a Pool
type Option func(*Pool)

// WithJobTimeout overrides DefaultJobTimeout
func WithJobTimeout(d time.Duration) Option {
	return func(p *Pool) { p.jobTimeout = d }
}

func NewPool(workers, queueSize int, opts ...Option) *Pool {
	p := &Pool{
		workers:    max(workers, 1),
		queue:      make(chan Job, queueSize),
		jobTimeout: DefaultJobTimeout,
		quit:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the workers. Later calls are no-ops.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.wg.Add(p.workers)
		for range p.workers {
			go p.loop()
		}
	})
}

func (p *Pool) loop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.queue:
			p.run(job)
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	defer cancel()
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	start := time.Now()
	err := safeProcess(ctx, job)
	metrics.WorkerJobDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.WorkerJobs.WithLabelValues(metrics.ResultFailed).Inc()
		log.Error(LogMsgWorkerJobFailed, "job", fmt.Sprintf("%T", job), "error", err)
		return
	}
	metrics.WorkerJobs.WithLabelValues(metrics.ResultSuccess).Inc()
}

func safeProcess(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgWorkerJobPanicked, "panic", r)
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Process(ctx)
}

// Submit queues job, waiting for room until ctx ends or the pool stops.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	select {
	case <-p.quit:
		return ErrPoolStopped
	default:
	}
	select {
	case p.queue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySubmit queues job only if there is room right now.
func (p *Pool) TrySubmit(job Job) bool {
	select {
	case <-p.quit:
		return false
	case p.queue <- job:
		return true
	default:
		metrics.WorkerJobsDropped.Inc()
		logger.Warn(LogMsgWorkerQueueFull, "job", fmt.Sprintf("%T", job))
		return false
	}
}

// Stop waits for running jobs to return. Jobs still queued are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}
