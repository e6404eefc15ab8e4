// Package leaktest detects goroutines left running by a test
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	drainTimeout = time.Second
	pollInterval = 20 * time.Millisecond
)

// GoroutineChecker compares goroutine counts before and after the code under test
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines are still running
// once drainTimeout has passed.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	after := g.wait(tolerance)
	if leaked := after - g.before; leaked > tolerance {
		g.t.Errorf("Potential goroutine leak: before=%d, after=%d, leaked=%d (tolerance=%d)",
			g.before, after, leaked, tolerance)
	}
}

// wait polls until the count drops within tolerance or the deadline passes
func (g *GoroutineChecker) wait(tolerance int) int {
	deadline := time.Now().Add(drainTimeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n-g.before <= tolerance || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}
