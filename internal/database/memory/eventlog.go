package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/hunter-yen/hunter-server/internal/eventlog"
)

// EventLog keeps audit entries in a slice, oldest first
type EventLog struct {
	mu      sync.Mutex
	nextID  int64
	entries []eventlog.Entry
	now     func() time.Time
}

// NewEventLog returns an empty audit log
func NewEventLog() *EventLog {
	return &EventLog{now: time.Now}
}

func (l *EventLog) Append(_ context.Context, e eventlog.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	e.ID = l.nextID
	e.CreatedAt = l.now().UTC()
	if e.UserID != nil {
		uid := *e.UserID
		e.UserID = &uid
	}
	e.Payload = maps.Clone(e.Payload)
	e.Metadata = maps.Clone(e.Metadata)
	l.entries = append(l.entries, e)
	return nil
}

// ListByUser walks backwards so the newest entries come first
func (l *EventLog) ListByUser(_ context.Context, userID string, limit int) ([]eventlog.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []eventlog.Entry{}
	for i := len(l.entries) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if e := l.entries[i]; e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (l *EventLog) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	deleted := int64(len(l.entries) - len(kept))
	l.entries = kept
	return deleted, nil
}

var _ eventlog.Repository = (*EventLog)(nil)
