package leaderboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/database/memory"
	"github.com/hunter-yen/hunter-server/internal/domain"
)

func seed(t *testing.T, players ...domain.Player) *memory.Store {
	t.Helper()
	store := memory.New()
	for i := range players {
		require.NoError(t, store.CreatePlayer(context.Background(), &players[i]))
	}
	return store
}

func TestTop_OrdersByScoreThenUsername(t *testing.T) {
	store := seed(t,
		domain.Player{ID: "u1", Username: "carol", Score: 50},
		domain.Player{ID: "u2", Username: "alice", Score: 80},
		domain.Player{ID: "u3", Username: "bob", Score: 50},
	)

	board, err := NewService(store).Top(context.Background(), 0, "")
	require.NoError(t, err)

	require.Len(t, board.Entries, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{board.Entries[0].Username, board.Entries[1].Username, board.Entries[2].Username})
	assert.Equal(t, []int{1, 2, 3}, []int{board.Entries[0].Rank, board.Entries[1].Rank, board.Entries[2].Rank})
	assert.Nil(t, board.Me)
}

func TestTop_IncludesCallerOutsideLimit(t *testing.T) {
	var players []domain.Player
	for i := 0; i < 5; i++ {
		players = append(players, domain.Player{ID: fmt.Sprintf("u%d", i), Username: fmt.Sprintf("p%d", i), Score: 100 - i*10})
	}
	store := seed(t, players...)
	svc := NewService(store)

	board, err := svc.Top(context.Background(), 2, "u4")
	require.NoError(t, err)
	assert.Len(t, board.Entries, 2)
	require.NotNil(t, board.Me)
	assert.Equal(t, 5, board.Me.Rank)
	assert.Equal(t, 60, board.Me.Score)

	board, err = svc.Top(context.Background(), 2, "u1")
	require.NoError(t, err)
	require.NotNil(t, board.Me)
	assert.Equal(t, 2, board.Me.Rank)
}

func TestTop_UnknownCaller(t *testing.T) {
	store := seed(t, domain.Player{ID: "u1", Username: "alice"})

	_, err := NewService(store).Top(context.Background(), 10, "ghost")
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
}

func TestTop_EmptyBoard(t *testing.T) {
	board, err := NewService(memory.New()).Top(context.Background(), 500, "")
	require.NoError(t, err)
	assert.NotNil(t, board.Entries)
	assert.Empty(t, board.Entries)
}
