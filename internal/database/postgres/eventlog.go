package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hunter-yen/hunter-server/internal/eventlog"
)

// EventLogRepository stores the audit trail in the events table
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

func (r *EventLogRepository) Append(ctx context.Context, e eventlog.Entry) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEvent, err)
	}

	var metadata []byte
	if len(e.Metadata) > 0 {
		if metadata, err = json.Marshal(e.Metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalEvent, err)
		}
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO events (event_type, user_id, payload, metadata) VALUES ($1, $2, $3, $4)`,
		e.Type, e.UserID, payload, metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

func (r *EventLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]eventlog.Entry, error) {
	if limit <= 0 {
		limit = DefaultEventHistoryLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, event_type, user_id, payload, metadata, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEvents, err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetEvents, err)
	}
	return entries, nil
}

func (r *EventLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.CollectableRow) (eventlog.Entry, error) {
	var (
		e                 eventlog.Entry
		payload, metadata []byte
	)
	if err := row.Scan(&e.ID, &e.Type, &e.UserID, &payload, &metadata, &e.CreatedAt); err != nil {
		return e, err
	}
	if err := json.Unmarshal(payload, &e.Payload); err != nil {
		return e, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return e, err
		}
	}
	return e, nil
}

var _ eventlog.Repository = (*EventLogRepository)(nil)
