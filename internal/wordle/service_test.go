package wordle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/database/memory"
	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

var testNow = time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

// fakeMissions records transitions and reports the resulting state
type fakeMissions struct {
	calls []string
	err   error
}

func (f *fakeMissions) record(action, taskID string, state domain.MissionState) (*domain.Player, error) {
	f.calls = append(f.calls, action+":"+taskID)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Player{ID: "u1", Missions: []domain.Mission{{TaskID: taskID, State: state}}}, nil
}

func (f *fakeMissions) Accept(_ context.Context, _, taskID string) (*domain.Player, error) {
	return f.record("accept", taskID, domain.MissionInProgress)
}

func (f *fakeMissions) Complete(_ context.Context, _, taskID string) (*domain.Player, error) {
	return f.record("complete", taskID, domain.MissionCompleted)
}

func (f *fakeMissions) Forfeit(_ context.Context, _, taskID string) (*domain.Player, error) {
	return f.record("forfeit", taskID, domain.MissionClaimed)
}

type wordleFixture struct {
	svc      *service
	missions *fakeMissions
	store    Store
	finished []event.WordleFinishedPayloadV1
}

func newWordleFixture(t *testing.T, state domain.MissionState, rng utils.RNG) *wordleFixture {
	t.Helper()
	ctx := context.Background()
	players := memory.New()
	require.NoError(t, players.CreatePlayer(ctx, &domain.Player{
		ID:       "u1",
		Username: "alice",
		Missions: []domain.Mission{{TaskID: "word_task", State: state}},
	}))

	f := &wordleFixture{missions: &fakeMissions{}, store: NewMemoryStore(16, time.Hour)}
	bus := event.NewMemoryBus()
	bus.Subscribe(event.WordleFinished, func(_ context.Context, e event.Event) error {
		p, err := event.DecodePayload[event.WordleFinishedPayloadV1](e.Payload)
		f.finished = append(f.finished, p)
		return err
	})

	cfg := gamedata.WordleConfig{Words: []string{"APPLE", "POWER", "TIGER"}, MaxAttempts: 3}
	f.svc = NewService(players, f.missions, f.store, cfg, rng, bus).(*service)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func TestStart_AcceptsAvailableMission(t *testing.T) {
	f := newWordleFixture(t, domain.MissionAvailable, utils.NewScriptedRNG(1))

	v, err := f.svc.Start(context.Background(), "u1", "word_task")
	require.NoError(t, err)

	assert.Equal(t, []string{"accept:word_task"}, f.missions.calls)
	assert.Equal(t, StatusPlaying, v.Status)
	assert.Equal(t, 5, v.WordLength)
	assert.Equal(t, 3, v.Remaining)
	assert.Empty(t, v.Word)

	g, err := f.store.Load(context.Background(), "u1", "word_task")
	require.NoError(t, err)
	assert.Equal(t, "POWER", g.Word)
	assert.Equal(t, testNow, g.StartedAt)
}

func TestStart_ResumesGameInProgress(t *testing.T) {
	f := newWordleFixture(t, domain.MissionInProgress, utils.NewScriptedRNG(0, 2))
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "u1", "word_task")
	require.NoError(t, err)
	_, err = f.svc.Guess(ctx, "u1", "word_task", "TIGER")
	require.NoError(t, err)

	v, err := f.svc.Start(ctx, "u1", "word_task")
	require.NoError(t, err)
	assert.Len(t, v.Attempts, 1)
	assert.Empty(t, f.missions.calls)

	g, err := f.store.Load(ctx, "u1", "word_task")
	require.NoError(t, err)
	assert.Equal(t, "APPLE", g.Word)
}

func TestStart_Rejections(t *testing.T) {
	t.Run("mission not held", func(t *testing.T) {
		f := newWordleFixture(t, domain.MissionAvailable, utils.NewRNG(1))
		_, err := f.svc.Start(context.Background(), "u1", "other_task")
		assert.ErrorIs(t, err, domain.ErrMissionNotFound)
	})

	t.Run("mission completed", func(t *testing.T) {
		f := newWordleFixture(t, domain.MissionCompleted, utils.NewRNG(1))
		_, err := f.svc.Start(context.Background(), "u1", "word_task")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Empty(t, f.missions.calls)
	})

	t.Run("unknown player", func(t *testing.T) {
		f := newWordleFixture(t, domain.MissionAvailable, utils.NewRNG(1))
		_, err := f.svc.Start(context.Background(), "ghost", "word_task")
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})
}

func TestGuess_WinCompletesMission(t *testing.T) {
	f := newWordleFixture(t, domain.MissionAvailable, utils.NewScriptedRNG(2))
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "u1", "word_task")
	require.NoError(t, err)

	res, err := f.svc.Guess(ctx, "u1", "word_task", "tiger")
	require.NoError(t, err)

	assert.Equal(t, StatusWon, res.Game.Status)
	assert.Equal(t, "TIGER", res.Game.Word)
	require.NotNil(t, res.Mission)
	assert.Equal(t, domain.MissionCompleted, res.Mission.State)
	assert.Equal(t, []string{"accept:word_task", "complete:word_task"}, f.missions.calls)

	require.Len(t, f.finished, 1)
	assert.True(t, f.finished[0].Won)
	assert.Equal(t, 1, f.finished[0].Attempts)

	_, err = f.svc.Guess(ctx, "u1", "word_task", "TIGER")
	assert.ErrorIs(t, err, domain.ErrGameOver)
}

func TestGuess_LossForfeitsMission(t *testing.T) {
	f := newWordleFixture(t, domain.MissionAvailable, utils.NewScriptedRNG(0))
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "u1", "word_task")
	require.NoError(t, err)

	for _, guess := range []string{"TIGER", "POWER"} {
		res, err := f.svc.Guess(ctx, "u1", "word_task", guess)
		require.NoError(t, err)
		assert.Equal(t, StatusPlaying, res.Game.Status)
		assert.Nil(t, res.Mission)
	}

	res, err := f.svc.Guess(ctx, "u1", "word_task", "HOUSE")
	require.NoError(t, err)
	assert.Equal(t, StatusLost, res.Game.Status)
	assert.Equal(t, "APPLE", res.Game.Word)
	require.NotNil(t, res.Mission)
	assert.Equal(t, domain.MissionClaimed, res.Mission.State)
	assert.Equal(t, "forfeit:word_task", f.missions.calls[len(f.missions.calls)-1])

	require.Len(t, f.finished, 1)
	assert.False(t, f.finished[0].Won)
	assert.Equal(t, 3, f.finished[0].Attempts)
}

func TestGuess_InvalidGuessKeepsAttempts(t *testing.T) {
	f := newWordleFixture(t, domain.MissionAvailable, utils.NewScriptedRNG(0))
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "u1", "word_task")
	require.NoError(t, err)

	_, err = f.svc.Guess(ctx, "u1", "word_task", "AB1")
	assert.ErrorIs(t, err, domain.ErrInvalidGuess)

	g, err := f.store.Load(ctx, "u1", "word_task")
	require.NoError(t, err)
	assert.Empty(t, g.Attempts)
}

func TestGuess_NoGame(t *testing.T) {
	f := newWordleFixture(t, domain.MissionInProgress, utils.NewRNG(1))
	_, err := f.svc.Guess(context.Background(), "u1", "word_task", "APPLE")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestGuess_MissionSyncFailureStillReturnsResult(t *testing.T) {
	f := newWordleFixture(t, domain.MissionInProgress, utils.NewScriptedRNG(0))
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "u1", "word_task")
	require.NoError(t, err)

	f.missions.err = domain.ErrInvalidState
	res, err := f.svc.Guess(ctx, "u1", "word_task", "APPLE")
	require.NoError(t, err)
	assert.Equal(t, StatusWon, res.Game.Status)
	assert.Nil(t, res.Mission)
	assert.Len(t, f.finished, 1)
}
