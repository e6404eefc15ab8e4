// Package scheduler submits recurring jobs to a worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/worker"
)

// Submitter is the part of worker.Pool the scheduler needs
type Submitter interface {
	TrySubmit(job worker.Job) bool
}

// Scheduler owns one ticker goroutine per scheduled job
type Scheduler struct {
	pool   Submitter
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(pool Submitter) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule submits job every interval until Stop. A tick that finds the
// pool queue full is skipped, never queued behind.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				if !s.pool.TrySubmit(job) {
					logger.Warn(LogMsgTickSkipped, "job", name, "interval", interval)
				}
			}
		}
	}()
	logger.Debug(LogMsgJobScheduled, "job", name, "interval", interval)
}

// RunNow submits job once, outside its schedule
func (s *Scheduler) RunNow(name string, job worker.Job) bool {
	ok := s.pool.TrySubmit(job)
	if !ok {
		logger.Warn(LogMsgTickSkipped, "job", name)
	}
	return ok
}

// Stop ends every schedule and waits for the ticker goroutines to exit.
// Jobs already handed to the pool are not interrupted.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickSkipped  = "Scheduled job skipped, worker queue full"
)
