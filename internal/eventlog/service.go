package eventlog

import (
	"context"
	"time"

	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
)

// Service records every game event into an audit trail
type Service interface {
	// Subscribe registers the recorder for every game event type
	Subscribe(bus event.Bus) error

	// History returns a player's newest audit entries
	History(ctx context.Context, userID string, limit int) ([]Entry, error)

	// Prune deletes entries older than retention
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.record)
	}
	return nil
}

// record flattens the typed payload into a map and appends it
func (s *service) record(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadUndecodable, LogFieldType, evt.Type)
		return nil
	}

	entry := Entry{
		Type:     string(evt.Type),
		Payload:  payload,
		Metadata: evt.Metadata,
	}
	if uid, ok := payload[PayloadKeyUserID].(string); ok && uid != "" {
		entry.UserID = &uid
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, entry.UserID)
	return nil
}

func (s *service) History(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	entries, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.DeleteBefore(ctx, s.now().Add(-retention))
}
