package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/hunter-yen/hunter-server/internal/crafting"
	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/drop"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/eventlog"
	"github.com/hunter-yen/hunter-server/internal/itemuse"
	"github.com/hunter-yen/hunter-server/internal/leaderboard"
	"github.com/hunter-yen/hunter-server/internal/mission"
	"github.com/hunter-yen/hunter-server/internal/wordle"
)

// serve routes one request through a chi router so URL params resolve
func serve(method, pattern, target string, body interface{}, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) Register(ctx context.Context, username string) (*domain.Player, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) Get(ctx context.Context, userID string) (*domain.Player, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) History(ctx context.Context, userID string, limit int) ([]eventlog.Entry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Entry), args.Error(1)
}

func (m *MockEventLogService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}

type MockMissionService struct {
	mock.Mock
}

func (m *MockMissionService) player(args mock.Arguments) (*domain.Player, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockMissionService) List(ctx context.Context, userID string) ([]domain.MissionView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MissionView), args.Error(1)
}

func (m *MockMissionService) Accept(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return m.player(m.Called(ctx, userID, taskID))
}

func (m *MockMissionService) Decline(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return m.player(m.Called(ctx, userID, taskID))
}

func (m *MockMissionService) Complete(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return m.player(m.Called(ctx, userID, taskID))
}

func (m *MockMissionService) Forfeit(ctx context.Context, userID, taskID string) (*domain.Player, error) {
	return m.player(m.Called(ctx, userID, taskID))
}

func (m *MockMissionService) Claim(ctx context.Context, userID, taskID string) (*mission.ClaimResult, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.ClaimResult), args.Error(1)
}

func (m *MockMissionService) CheckPlace(ctx context.Context, userID, taskID, place string) (*domain.Player, error) {
	return m.player(m.Called(ctx, userID, taskID, place))
}

func (m *MockMissionService) Refresh(ctx context.Context, userID string) (*domain.Player, error) {
	return m.player(m.Called(ctx, userID))
}

func (m *MockMissionService) CreateGenerated(ctx context.Context, userID string, req mission.GeneratedRequest) (*domain.MissionView, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionView), args.Error(1)
}

func (m *MockMissionService) RefreshPlayer(ctx context.Context, p *domain.Player) ([]string, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMissionService) RetireTasks(ctx context.Context, taskIDs []string) {
	m.Called(ctx, taskIDs)
}

func (m *MockMissionService) SeedMissions(ctx context.Context, p *domain.Player) error {
	return m.Called(ctx, p).Error(0)
}

type MockItemLister struct {
	mock.Mock
}

func (m *MockItemLister) List(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

type MockItemUseService struct {
	mock.Mock
}

func (m *MockItemUseService) UseItem(ctx context.Context, userID, itemID, requestID string) (*itemuse.UseResult, error) {
	args := m.Called(ctx, userID, itemID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemuse.UseResult), args.Error(1)
}

type MockCraftingService struct {
	mock.Mock
}

func (m *MockCraftingService) Craft(ctx context.Context, userID, itemID string) (*crafting.CraftResult, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crafting.CraftResult), args.Error(1)
}

type MockDropService struct {
	mock.Mock
}

func (m *MockDropService) Roll(ctx context.Context, difficulty int) ([]string, error) {
	args := m.Called(ctx, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDropService) Claim(ctx context.Context, userID string, difficulty int) (*drop.ClaimResult, error) {
	args := m.Called(ctx, userID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drop.ClaimResult), args.Error(1)
}

type MockEncounterService struct {
	mock.Mock
}

func (m *MockEncounterService) outcome(args mock.Arguments) (*domain.EventOutcome, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EventOutcome), args.Error(1)
}

func (m *MockEncounterService) OpenChest(ctx context.Context, userID, keyType string) (*domain.EventOutcome, error) {
	return m.outcome(m.Called(ctx, userID, keyType))
}

func (m *MockEncounterService) Trade(ctx context.Context, userID, optionKey string) (*domain.EventOutcome, error) {
	return m.outcome(m.Called(ctx, userID, optionKey))
}

func (m *MockEncounterService) Bless(ctx context.Context, userID, optionKey string) (*domain.EventOutcome, error) {
	return m.outcome(m.Called(ctx, userID, optionKey))
}

func (m *MockEncounterService) AttackSlime(ctx context.Context, userID string, hits []int) (*domain.EventOutcome, error) {
	return m.outcome(m.Called(ctx, userID, hits))
}

func (m *MockEncounterService) TriggerStonePile(ctx context.Context, userID string) (*domain.EventOutcome, error) {
	return m.outcome(m.Called(ctx, userID))
}

func (m *MockEncounterService) ClaimSupply(ctx context.Context, userID, stationID string) (*domain.EventOutcome, error) {
	return m.outcome(m.Called(ctx, userID, stationID))
}

func (m *MockEncounterService) ListStations(ctx context.Context) ([]domain.SupplyStation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupplyStation), args.Error(1)
}

func (m *MockEncounterService) Options(kind string) ([]domain.EventOption, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventOption), args.Error(1)
}

type MockWordleService struct {
	mock.Mock
}

func (m *MockWordleService) Start(ctx context.Context, userID, taskID string) (*wordle.View, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordle.View), args.Error(1)
}

func (m *MockWordleService) Guess(ctx context.Context, userID, taskID, guess string) (*wordle.GuessResult, error) {
	args := m.Called(ctx, userID, taskID, guess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wordle.GuessResult), args.Error(1)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Top(ctx context.Context, limit int, userID string) (*leaderboard.Board, error) {
	args := m.Called(ctx, limit, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leaderboard.Board), args.Error(1)
}
