package handler

import (
	"context"
	"net/http"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/mission"
)

// Mission actions accepted on POST /missions/{userId}/{taskId}/{action}
const (
	ActionAccept   = "accept"
	ActionDecline  = "decline"
	ActionComplete = "complete"
	ActionClaim    = "claim"
)

// MissionHandler serves the mission lifecycle
type MissionHandler struct {
	service mission.Service
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(service mission.Service) *MissionHandler {
	return &MissionHandler{service: service}
}

// CheckPlaceRequest is the body of a check-in
type CheckPlaceRequest struct {
	Place string `json:"place" validate:"required,max=128"`
}

// HandleList returns a player's missions joined with their tasks
// @Summary List missions
// @Tags missions
// @Produce json
// @Param userId path string true "Player ID"
// @Success 200 {array} domain.MissionView
// @Failure 404 {object} ErrorResponse
// @Router /missions/{userId} [get]
func (h *MissionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	views, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpListMissions, err)
		return
	}

	respondJSON(w, http.StatusOK, views)
}

// HandleAction runs one mission transition
// @Summary Mission transition
// @Description accept, decline and complete return the player; claim also reports the payout
// @Tags missions
// @Produce json
// @Param userId path string true "Player ID"
// @Param taskId path string true "Task ID"
// @Param action path string true "accept, decline, complete or claim"
// @Success 200 {object} domain.Player
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /missions/{userId}/{taskId}/{action} [post]
func (h *MissionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	taskID, ok := GetPathParam(r, w, ParamTaskID)
	if !ok {
		return
	}
	action, ok := GetPathParam(r, w, ParamAction)
	if !ok {
		return
	}

	var transition func(context.Context, string, string) (*domain.Player, error)
	switch action {
	case ActionAccept:
		transition = h.service.Accept
	case ActionDecline:
		transition = h.service.Decline
	case ActionComplete:
		transition = h.service.Complete
	case ActionClaim:
		result, err := h.service.Claim(r.Context(), userID, taskID)
		if err != nil {
			respondServiceError(w, r, OpMissionAction, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	default:
		respondError(w, http.StatusBadRequest, ErrMsgUnknownAction)
		return
	}

	p, err := transition(r.Context(), userID, taskID)
	if err != nil {
		respondServiceError(w, r, OpMissionAction, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleCheckPlace marks one check place of an in-progress mission
// @Summary Check in at a mission place
// @Tags missions
// @Accept json
// @Produce json
// @Param userId path string true "Player ID"
// @Param taskId path string true "Task ID"
// @Param request body CheckPlaceRequest true "Place"
// @Success 200 {object} domain.Player
// @Failure 400 {object} ErrorResponse
// @Router /missions/{userId}/{taskId}/check [post]
func (h *MissionHandler) HandleCheckPlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	taskID, ok := GetPathParam(r, w, ParamTaskID)
	if !ok {
		return
	}

	var req CheckPlaceRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCheckPlace); err != nil {
		return
	}

	p, err := h.service.CheckPlace(r.Context(), userID, taskID, req.Place)
	if err != nil {
		respondServiceError(w, r, OpCheckPlace, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleRefresh normalizes the player's slate to five missions
// @Summary Refresh missions
// @Tags missions
// @Produce json
// @Param userId path string true "Player ID"
// @Success 200 {object} domain.Player
// @Failure 404 {object} ErrorResponse
// @Router /missions/{userId}/refresh [post]
func (h *MissionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	p, err := h.service.Refresh(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, OpRefreshMissions, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

// HandleCreateGenerated adds a generated task and starts it for the player
// @Summary Create generated mission
// @Tags missions
// @Accept json
// @Produce json
// @Param userId path string true "Player ID"
// @Param request body mission.GeneratedRequest true "Generated task"
// @Success 201 {object} domain.MissionView
// @Failure 400 {object} ErrorResponse
// @Router /missions/{userId}/generated [post]
func (h *MissionHandler) HandleCreateGenerated(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	var req mission.GeneratedRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCreateGenerated); err != nil {
		return
	}

	view, err := h.service.CreateGenerated(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, r, OpCreateGenerated, err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}
