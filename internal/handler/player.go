package handler

import (
	"net/http"

	"github.com/hunter-yen/hunter-server/internal/eventlog"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/player"
)

// PlayerHandler serves registration and player snapshots
type PlayerHandler struct {
	service player.Service
	history eventlog.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(service player.Service, history eventlog.Service) *PlayerHandler {
	return &PlayerHandler{service: service, history: history}
}

// RegisterPlayerRequest is the body of POST /players
type RegisterPlayerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=32,username"`
}

// HandleRegister creates a player with a fresh mission slate
// @Summary Register player
// @Tags players
// @Accept json
// @Produce json
// @Param request body RegisterPlayerRequest true "Player name"
// @Success 201 {object} domain.Player
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /players [post]
func (h *PlayerHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterPlayerRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpRegisterPlayer); err != nil {
		return
	}

	p, err := h.service.Register(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, OpRegisterPlayer, err)
		return
	}

	logger.FromContext(r.Context()).Info("Player registered", "user_id", p.ID, "username", p.Username)
	respondJSON(w, http.StatusCreated, p)
}

// HandleGet returns a player snapshot
// @Summary Get player
// @Tags players
// @Produce json
// @Param userId path string true "Player ID"
// @Success 200 {object} domain.Player
// @Failure 404 {object} ErrorResponse
// @Router /players/{userId} [get]
func (h *PlayerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpGetPlayer, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleHistory returns the player's most recent game events
// @Summary Player event history
// @Tags players
// @Produce json
// @Param userId path string true "Player ID"
// @Param limit query int false "Maximum events (default 50)"
// @Success 200 {array} eventlog.Entry
// @Router /players/{userId}/events [get]
func (h *PlayerHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	events, err := h.history.History(r.Context(), userID, getQueryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, r, OpPlayerHistory, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}
