package handler

import (
	"net/http"

	"github.com/hunter-yen/hunter-server/internal/leaderboard"
)

// LeaderboardHandler serves the score ranking
type LeaderboardHandler struct {
	service leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(service leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// HandleTop returns the best players and optionally the caller's rank
// @Summary Get leaderboard
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Entries to return (max 100)"
// @Param userId query string false "Player whose rank is included"
// @Success 200 {object} leaderboard.Board
// @Router /leaderboard [get]
func (h *LeaderboardHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	limit := getQueryInt(r, "limit", leaderboard.DefaultLimit)
	userID := GetOptionalQueryParam(r, ParamUserID, "")

	board, err := h.service.Top(r.Context(), limit, userID)
	if err != nil {
		respondServiceError(w, r, OpGetLeaderboard, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}
