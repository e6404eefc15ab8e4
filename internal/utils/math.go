package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the source of every gameplay random draw. Tests inject scripted sources.
type RNG interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// lockedRNG is a math/rand source safe for concurrent use.
type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRNG returns a goroutine-safe RNG seeded from seed.
func NewRNG(seed int64) RNG {
	return &lockedRNG{r: rand.New(rand.NewSource(seed))} //nolint:gosec // Game logic randomness, not security critical
}

// DefaultRNG returns a goroutine-safe RNG seeded from the clock.
func DefaultRNG() RNG {
	return NewRNG(time.Now().UnixNano())
}

func (l *lockedRNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(rng RNG, min, max int) int {
	if min >= max {
		return min
	}
	return rng.IntN(max-min+1) + min
}

// Pick returns a uniformly chosen element, or the zero value and false for an empty slice.
func Pick[T any](rng RNG, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rng.IntN(len(items))], true
}

// SampleUnique draws up to n distinct elements in random order.
func SampleUnique[T any](rng RNG, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	pool := append([]T(nil), items...)
	if n > len(pool) {
		n = len(pool)
	}
	// partial Fisher-Yates
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
