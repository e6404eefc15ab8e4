package leaktest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures Errorf calls so a failing check can be asserted on
type recordingTB struct {
	testing.TB
	mu     sync.Mutex
	errors []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestGoroutineChecker_NoLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() { defer wg.Done() }()
	}
	wg.Wait()

	checker.Check(0)
	assert.Empty(t, rec.errors)
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	stop := make(chan struct{})
	for i := 0; i < 3; i++ {
		go func() { <-stop }()
	}

	checker.Check(1)
	close(stop)

	assert.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "Potential goroutine leak")
}
