package event

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hunter-yen/hunter-server/internal/logger"
)

// ResilientPublisher wraps a Bus so a failing subscriber never fails the caller.
// Failed publishes are retried in the background with exponential backoff and
// dead-lettered once retries are exhausted.
type ResilientPublisher struct {
	inner      Bus
	maxRetries int
	baseDelay  time.Duration
	deadLetter *DeadLetterWriter

	wg       sync.WaitGroup
	stopCtx  context.Context
	stop     context.CancelFunc
	shutdown atomic.Bool
}

// NewResilientPublisher creates a publisher writing exhausted events to deadLetterPath
func NewResilientPublisher(inner Bus, maxRetries int, baseDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dlw, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ResilientPublisher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		deadLetter: dlw,
		stopCtx:    ctx,
		stop:       cancel,
	}, nil
}

// Publish implements Bus. It never returns an error for subscriber failures.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// PublishWithRetry publishes synchronously once, then retries asynchronously on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return
	}

	log := logger.FromContext(ctx)
	if p.shutdown.Load() {
		p.writeDeadLetter(event, 1, err)
		return
	}

	log.Warn(LogMsgEventPublishFailed, "event_type", event.Type, "error", err, "retries", p.maxRetries)

	p.wg.Add(1)
	go p.retry(event, err)
}

func (p *ResilientPublisher) retry(event Event, firstErr error) {
	defer p.wg.Done()

	if p.maxRetries <= 0 {
		p.writeDeadLetter(event, 1, firstErr)
		return
	}

	select {
	case <-time.After(p.baseDelay):
	case <-p.stopCtx.Done():
		p.writeDeadLetter(event, 1, firstErr)
		return
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.baseDelay * 2
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	attempts := 1
	lastErr := firstErr
	op := func() error {
		attempts++
		lastErr = p.inner.Publish(p.stopCtx, event)
		return lastErr
	}

	// The first retry runs immediately after the initial delay above.
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(p.maxRetries-1)), p.stopCtx)
	if err := backoff.Retry(op, b); err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempts", attempts)
		return
	}

	logger.Warn(LogMsgEventRetryExhausted, "event_type", event.Type, "attempts", attempts)
	p.writeDeadLetter(event, attempts, lastErr)
}

func (p *ResilientPublisher) writeDeadLetter(event Event, attempts int, err error) {
	if werr := p.deadLetter.Write(event, attempts, err); werr != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", werr)
	}
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown stops pending retries, dead-lettering their events, and closes the file
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdown.Store(true)
	p.stop()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
	return p.deadLetter.Close()
}
