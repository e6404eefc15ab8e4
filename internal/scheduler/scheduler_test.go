package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hunter-yen/hunter-server/internal/testing/leaktest"
	"github.com/hunter-yen/hunter-server/internal/worker"
)

type recordingPool struct {
	mu     sync.Mutex
	jobs   int
	accept bool
}

func (p *recordingPool) TrySubmit(worker.Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.accept {
		p.jobs++
	}
	return p.accept
}

func (p *recordingPool) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jobs
}

var noop = worker.JobFunc(func(context.Context) error { return nil })

func TestScheduler_SubmitsOnEveryTick(t *testing.T) {
	pool := &recordingPool{accept: true}
	sched := New(pool)
	defer sched.Stop()

	sched.Schedule("noop", 5*time.Millisecond, noop)

	assert.Eventually(t, func() bool { return pool.count() >= 3 }, time.Second, time.Millisecond)
}

func TestScheduler_RunNow(t *testing.T) {
	assert.True(t, New(&recordingPool{accept: true}).RunNow("noop", noop))
	assert.False(t, New(&recordingPool{accept: false}).RunNow("noop", noop))
}

func TestScheduler_WithRealPool(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	ran := make(chan struct{}, 4)
	sched := New(pool)
	defer sched.Stop()

	sched.Schedule("signal", 5*time.Millisecond, worker.JobFunc(func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	for range 2 {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for scheduled run")
		}
	}
}

func TestScheduler_StopReleasesTickers(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	sched := New(&recordingPool{accept: true})
	sched.Schedule("a", time.Hour, noop)
	sched.Schedule("b", time.Hour, noop)
	sched.Stop()

	checker.Check(0)
}
