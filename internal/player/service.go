package player

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// MissionSeeder fills a new player's mission slots before it is stored
type MissionSeeder interface {
	SeedMissions(ctx context.Context, p *domain.Player) error
}

// Service manages player registration and snapshots
type Service interface {
	Register(ctx context.Context, username string) (*domain.Player, error)
	Get(ctx context.Context, userID string) (*domain.Player, error)
}

type service struct {
	repo   repository.Player
	seeder MissionSeeder
	bus    event.Bus
	now    func() time.Time
}

// NewService creates a player service. seeder may be nil.
func NewService(repo repository.Player, seeder MissionSeeder, bus event.Bus) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{repo: repo, seeder: seeder, bus: bus, now: time.Now}
}

// Register creates a player with an empty backpack and an initial mission slate
func (s *service) Register(ctx context.Context, username string) (*domain.Player, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}

	p := &domain.Player{
		ID:       uuid.NewString(),
		Username: username,
		Backpack: []domain.BackpackItem{},
		Missions: []domain.Mission{},
		Buffs:    []domain.Buff{},
	}

	if s.seeder != nil {
		if err := s.seeder.SeedMissions(ctx, p); err != nil {
			// a player without missions can still refresh later
			log.Warn(LogMsgFailedToSeedMissions, "error", err)
		}
	}

	if err := s.repo.CreatePlayer(ctx, p); err != nil {
		return nil, err
	}

	log.Info(LogMsgPlayerRegistered, "user_id", p.ID, "username", p.Username)
	if err := s.bus.Publish(ctx, event.NewPlayerRegisteredEvent(p.ID, p.Username)); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}
	return p, nil
}

// Get returns the player with expired buffs filtered out
func (s *service) Get(ctx context.Context, userID string) (*domain.Player, error) {
	p, err := s.repo.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Buffs = p.ActiveBuffs(s.now())
	return p, nil
}
