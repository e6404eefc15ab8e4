package mission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/player"
	"github.com/hunter-yen/hunter-server/internal/repository"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// DropRoller resolves reward items for generated missions
type DropRoller interface {
	Roll(ctx context.Context, difficulty int) ([]string, error)
}

// GeneratedRequest describes a one-shot mission produced by the generator
type GeneratedRequest struct {
	Name            string   `json:"name" validate:"required,max=64"`
	Description     string   `json:"description" validate:"max=512"`
	Difficulty      string   `json:"difficulty" validate:"omitempty,oneof=easy normal hard"`
	DurationMinutes int      `json:"durationMinutes" validate:"min=0,max=1440"`
	CheckPlaces     []string `json:"checkPlaces" validate:"max=5,dive,required"`
}

// ClaimResult is the player after a claim plus what the claim paid out
type ClaimResult struct {
	Player      *domain.Player        `json:"player"`
	Overtime    bool                  `json:"overtime"`
	ScoreGained int                   `json:"scoreGained"`
	Items       []domain.ItemQuantity `json:"rewardItems"`
	Replacement string                `json:"replacementTaskId,omitempty"`
}

// Service runs mission transitions as optimistic player updates
type Service interface {
	List(ctx context.Context, userID string) ([]domain.MissionView, error)
	Accept(ctx context.Context, userID, taskID string) (*domain.Player, error)
	Decline(ctx context.Context, userID, taskID string) (*domain.Player, error)
	Complete(ctx context.Context, userID, taskID string) (*domain.Player, error)
	Forfeit(ctx context.Context, userID, taskID string) (*domain.Player, error)
	Claim(ctx context.Context, userID, taskID string) (*ClaimResult, error)
	CheckPlace(ctx context.Context, userID, taskID, place string) (*domain.Player, error)
	Refresh(ctx context.Context, userID string) (*domain.Player, error)
	CreateGenerated(ctx context.Context, userID string, req GeneratedRequest) (*domain.MissionView, error)

	// RefreshPlayer applies a refresh to an already loaded player, for callers
	// that own the surrounding transaction. Returned task IDs go to RetireTasks
	// once that transaction commits.
	RefreshPlayer(ctx context.Context, p *domain.Player) ([]string, error)
	RetireTasks(ctx context.Context, taskIDs []string)

	// SeedMissions fills a new player's slate
	SeedMissions(ctx context.Context, p *domain.Player) error
}

type service struct {
	players repository.Player
	tasks   repository.Task
	updater *player.Updater
	drops   DropRoller
	machine *Machine
	bus     event.Bus
	now     func() time.Time
}

// NewService creates a mission service. drops may be nil, in which case
// generated missions carry no reward items.
func NewService(players repository.Player, tasks repository.Task, updater *player.Updater, drops DropRoller, rng utils.RNG, bus event.Bus) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{
		players: players,
		tasks:   tasks,
		updater: updater,
		drops:   drops,
		machine: NewMachine(rng),
		bus:     bus,
		now:     time.Now,
	}
}

func (s *service) pool(ctx context.Context) (*Pool, error) {
	tasks, err := s.tasks.ListTasks(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadTasks, err)
	}
	return NewPool(tasks), nil
}

func (s *service) task(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.tasks.GetTask(ctx, taskID)
}

// List returns the player's missions joined with their task definitions
func (s *service) List(ctx context.Context, userID string) ([]domain.MissionView, error) {
	p, err := s.players.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(p.Missions))
	for _, m := range p.Missions {
		ids = append(ids, m.TaskID)
	}
	tasks, err := s.tasks.GetTasks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadTasks, err)
	}
	pool := NewPool(tasks)

	views := make([]domain.MissionView, 0, len(p.Missions))
	for _, m := range p.Missions {
		v := domain.MissionView{Mission: m}
		if t, ok := pool.Get(m.TaskID); ok {
			v.Task = t
		}
		views = append(views, v)
	}
	return views, nil
}

// transition runs fn as an optimistic update and records the state change
func (s *service) transition(ctx context.Context, userID, taskID, action string, fn player.MutateFunc) (*domain.Player, error) {
	var from domain.MissionState
	p, err := s.updater.Update(ctx, userID, func(p *domain.Player) error {
		if idx := p.FindMission(taskID); idx >= 0 {
			from = p.Missions[idx].State
		}
		return fn(p)
	})
	if err != nil {
		return nil, err
	}

	to := domain.MissionClaimed
	if idx := p.FindMission(taskID); idx >= 0 {
		to = p.Missions[idx].State
	}
	s.publish(ctx, event.MissionTransitionPayloadV1{
		UserID:    userID,
		TaskID:    taskID,
		Action:    action,
		FromState: string(from),
		ToState:   string(to),
	})
	return p, nil
}

// Accept starts an available mission
func (s *service) Accept(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	task, err := s.task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, userID, taskID, ActionAccept, func(p *domain.Player) error {
		return s.machine.Accept(p, task, s.now())
	})
}

// Decline parks an available or in-progress mission
func (s *service) Decline(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return s.transition(ctx, userID, taskID, ActionDecline, func(p *domain.Player) error {
		return s.machine.Decline(p, taskID, s.now())
	})
}

// Complete finishes an in-progress mission
func (s *service) Complete(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return s.transition(ctx, userID, taskID, ActionComplete, func(p *domain.Player) error {
		return s.machine.Complete(p, taskID)
	})
}

// Forfeit abandons an in-progress mission
func (s *service) Forfeit(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return s.transition(ctx, userID, taskID, ActionForfeit, func(p *domain.Player) error {
		return s.machine.Forfeit(p, taskID)
	})
}

// CheckPlace records a visit for an in-progress mission
func (s *service) CheckPlace(ctx context.Context, userID, taskID, place string) (*domain.Player, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, fmt.Errorf("%w: place is required", domain.ErrInvalidInput)
	}
	return s.transition(ctx, userID, taskID, ActionCheck, func(p *domain.Player) error {
		_, err := s.machine.CheckPlace(p, taskID, place)
		return err
	})
}

// Claim pays out a completed mission and replaces or retires its slot
func (s *service) Claim(ctx context.Context, userID, taskID string) (*ClaimResult, error) {
	task, err := s.task(ctx, taskID)
	if err != nil {
		return nil, err
	}
	pool, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}

	var outcome *ClaimOutcome
	p, err := s.updater.Update(ctx, userID, func(p *domain.Player) error {
		var err error
		outcome, err = s.machine.Claim(p, task, pool, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	if outcome.RetireTask {
		s.RetireTasks(ctx, []string{task.ID})
	}

	s.publish(ctx, event.MissionTransitionPayloadV1{
		UserID:      userID,
		TaskID:      taskID,
		Action:      ActionClaim,
		FromState:   string(domain.MissionCompleted),
		ToState:     string(domain.MissionClaimed),
		Overtime:    outcome.Overtime,
		ScoreGained: outcome.ScoreGained,
	})

	return &ClaimResult{
		Player:      p,
		Overtime:    outcome.Overtime,
		ScoreGained: outcome.ScoreGained,
		Items:       outcome.Items,
		Replacement: outcome.Replacement,
	}, nil
}

// Refresh normalises the player's slate to five missions where possible
func (s *service) Refresh(ctx context.Context, userID string) (*domain.Player, error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}

	var retired []string
	p, err := s.updater.Update(ctx, userID, func(p *domain.Player) error {
		retired = s.machine.Refresh(p, pool, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.RetireTasks(ctx, retired)
	logger.FromContext(ctx).Debug(LogMsgMissionsRefreshed, "user_id", userID, "missions", len(p.Missions))
	return p, nil
}

// RefreshPlayer refreshes p in place without persisting it
func (s *service) RefreshPlayer(ctx context.Context, p *domain.Player) ([]string, error) {
	pool, err := s.pool(ctx)
	if err != nil {
		return nil, err
	}
	return s.machine.Refresh(p, pool, s.now()), nil
}

// RetireTasks deletes generated tasks whose slots are gone. Failures are
// logged; a stale generated task is never sampled again.
func (s *service) RetireTasks(ctx context.Context, taskIDs []string) {
	for _, id := range taskIDs {
		if err := s.tasks.DeleteTask(ctx, id); err != nil {
			logger.FromContext(ctx).Warn(LogMsgFailedToRetireTask, "task_id", id, "error", err)
		}
	}
}

// SeedMissions fills an unsaved player's slate
func (s *service) SeedMissions(ctx context.Context, p *domain.Player) error {
	_, err := s.RefreshPlayer(ctx, p)
	return err
}

// CreateGenerated stores a one-shot task and starts it for the player
func (s *service) CreateGenerated(ctx context.Context, userID string, req GeneratedRequest) (*domain.MissionView, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" || len([]rune(name)) > MaxGeneratedNameLength {
		return nil, fmt.Errorf("%w: name must be 1-%d characters", domain.ErrInvalidInput, MaxGeneratedNameLength)
	}

	current, err := s.players.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(current.Missions) >= domain.MaxMissionSlots {
		return nil, domain.ErrMissionSlotsFull
	}

	difficulty, ok := domain.GeneratedDifficulty[strings.ToLower(req.Difficulty)]
	if !ok {
		difficulty = DefaultGeneratedDifficulty
	}

	task := &domain.Task{
		ID:          GeneratedPrefix + uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Difficulty:  difficulty,
		DurationSec: req.DurationMinutes * 60,
		RewardScore: domain.GeneratedTaskRewardScore,
		IsLLM:       true,
		CheckPlaces: req.CheckPlaces,
		CreatedAt:   s.now(),
	}
	if s.drops != nil {
		drops, err := s.drops.Roll(ctx, difficulty)
		if err != nil {
			log.Warn(LogMsgFailedToRollRewards, "difficulty", difficulty, "error", err)
		}
		task.RewardItems = utils.DropsToQuantities(drops)
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSaveTask, err)
	}

	p, err := s.transition(ctx, userID, task.ID, ActionGenerate, func(p *domain.Player) error {
		return s.machine.AddGenerated(p, task, s.now())
	})
	if err != nil {
		log.Warn(LogMsgRollbackGeneratedMsn, "task_id", task.ID, "error", err)
		s.RetireTasks(ctx, []string{task.ID})
		return nil, err
	}

	log.Info(LogMsgGeneratedMission, "user_id", userID, "task_id", task.ID, "difficulty", difficulty)
	m := p.Missions[p.FindMission(task.ID)]
	return &domain.MissionView{Mission: m, Task: task}, nil
}

func (s *service) publish(ctx context.Context, payload event.MissionTransitionPayloadV1) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMissionTransitioned,
		"user_id", payload.UserID, "task_id", payload.TaskID,
		"action", payload.Action, "from", payload.FromState, "to", payload.ToState)
	if err := s.bus.Publish(ctx, event.NewMissionTransitionEvent(payload)); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}
}
