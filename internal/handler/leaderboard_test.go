package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/leaderboard"
)

func TestHandleTop(t *testing.T) {
	board := &leaderboard.Board{
		Entries: []domain.LeaderboardEntry{{Rank: 1, UserID: "p1", Username: "hunter", Score: 90}},
	}

	t.Run("Defaults", func(t *testing.T) {
		svc := &MockLeaderboardService{}
		svc.On("Top", mock.Anything, leaderboard.DefaultLimit, "").Return(board, nil)
		h := NewLeaderboardHandler(svc)

		w := serve(http.MethodGet, "/leaderboard", "/leaderboard", nil, h.HandleTop)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"score":90`)
		svc.AssertExpectations(t)
	})

	t.Run("Limit And Caller", func(t *testing.T) {
		svc := &MockLeaderboardService{}
		svc.On("Top", mock.Anything, 10, "p2").Return(board, nil)
		h := NewLeaderboardHandler(svc)

		w := serve(http.MethodGet, "/leaderboard", "/leaderboard?limit=10&userId=p2", nil, h.HandleTop)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Garbage Limit Falls Back", func(t *testing.T) {
		svc := &MockLeaderboardService{}
		svc.On("Top", mock.Anything, leaderboard.DefaultLimit, "").Return(board, nil)
		h := NewLeaderboardHandler(svc)

		w := serve(http.MethodGet, "/leaderboard", "/leaderboard?limit=abc", nil, h.HandleTop)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}
