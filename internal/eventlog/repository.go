package eventlog

import (
	"context"
	"time"
)

// Entry is one row of the audit trail
type Entry struct {
	ID        int64                  `json:"id"`
	Type      string                 `json:"type"`
	UserID    *string                `json:"userId,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Repository stores the audit trail. Append assigns ID and CreatedAt.
type Repository interface {
	Append(ctx context.Context, e Entry) error

	// ListByUser returns a player's entries, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)

	// DeleteBefore removes entries created before cutoff
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
