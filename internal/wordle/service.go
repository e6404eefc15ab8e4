package wordle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/repository"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// ActionPlay labels guard failures when a mission cannot host a game
const ActionPlay = "play"

// MissionTransitions is the subset of the mission service the game drives
type MissionTransitions interface {
	Accept(ctx context.Context, userID, taskID string) (*domain.Player, error)
	Complete(ctx context.Context, userID, taskID string) (*domain.Player, error)
	Forfeit(ctx context.Context, userID, taskID string) (*domain.Player, error)
}

// GuessResult is the outcome of one guess
type GuessResult struct {
	Game    View            `json:"game"`
	Attempt Attempt         `json:"attempt"`
	Mission *domain.Mission `json:"mission,omitempty"`
}

// Service runs word games bound to missions
type Service interface {
	Start(ctx context.Context, userID, taskID string) (*View, error)
	Guess(ctx context.Context, userID, taskID, guess string) (*GuessResult, error)
}

type service struct {
	players  repository.Player
	missions MissionTransitions
	store    Store
	cfg      gamedata.WordleConfig
	rng      utils.RNG
	bus      event.Bus
	now      func() time.Time
}

// NewService creates a word game service
func NewService(players repository.Player, missions MissionTransitions, store Store, cfg gamedata.WordleConfig, rng utils.RNG, bus event.Bus) Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{
		players:  players,
		missions: missions,
		store:    store,
		cfg:      cfg,
		rng:      rng,
		bus:      bus,
		now:      time.Now,
	}
}

// Start begins a game for a held mission, accepting it when still available.
// A game already in flight for an in-progress mission is resumed.
func (s *service) Start(ctx context.Context, userID, taskID string) (*View, error) {
	log := logger.FromContext(ctx)

	p, err := s.players.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := p.FindMission(taskID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissionNotFound, taskID)
	}
	state := p.Missions[idx].State

	switch state {
	case domain.MissionInProgress:
		g, err := s.store.Load(ctx, userID, taskID)
		if err == nil && g.Status == StatusPlaying {
			log.Debug(LogMsgGameResumed, "user_id", userID, "task_id", taskID)
			v := g.View()
			return &v, nil
		}
		if err != nil && !errors.Is(err, domain.ErrGameNotFound) {
			return nil, err
		}
	case domain.MissionAvailable:
		if _, err := s.missions.Accept(ctx, userID, taskID); err != nil {
			return nil, err
		}
	default:
		return nil, &domain.InvalidStateError{TaskID: taskID, Action: ActionPlay, State: state}
	}

	word, ok := utils.Pick(s.rng, s.cfg.Words)
	if !ok {
		return nil, fmt.Errorf("%w: no words configured", domain.ErrInvalidInput)
	}
	g := NewGame(userID, taskID, word, s.cfg.MaxAttempts, s.now())
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}

	log.Info(LogMsgGameStarted, "user_id", userID, "task_id", taskID)
	v := g.View()
	return &v, nil
}

// Guess scores a guess. Winning completes the mission; running out of
// attempts forfeits it.
func (s *service) Guess(ctx context.Context, userID, taskID, guess string) (*GuessResult, error) {
	log := logger.FromContext(ctx)

	g, err := s.store.Load(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	attempt, err := g.Guess(guess)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, g); err != nil {
		return nil, err
	}

	result := &GuessResult{Game: g.View(), Attempt: attempt}
	if g.Status == StatusPlaying {
		return result, nil
	}

	transition := s.missions.Forfeit
	if g.Status == StatusWon {
		transition = s.missions.Complete
	}
	p, err := transition(ctx, userID, taskID)
	if err != nil {
		log.Warn(LogMsgFailedToSyncMission, "user_id", userID, "task_id", taskID, "status", g.Status, "error", err)
	} else if idx := p.FindMission(taskID); idx >= 0 {
		m := p.Missions[idx].Clone()
		result.Mission = &m
	}

	log.Info(LogMsgGameFinished, "user_id", userID, "task_id", taskID, "status", g.Status, "attempts", len(g.Attempts))
	if err := s.bus.Publish(ctx, event.NewWordleFinishedEvent(userID, taskID, g.Status == StatusWon, len(g.Attempts))); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}
	return result, nil
}
