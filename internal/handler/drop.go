package handler

import (
	"net/http"
	"strconv"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/drop"
)

// DropHandler serves drop claims
type DropHandler struct {
	service drop.Service
}

// NewDropHandler creates a new drop handler
func NewDropHandler(service drop.Service) *DropHandler {
	return &DropHandler{service: service}
}

// DropClaimResponse is the body of a successful drop claim
type DropClaimResponse struct {
	Success bool `json:"success"`
	*drop.ClaimResult
}

// HandleClaim rolls a difficulty's drop table into the player's backpack
// @Summary Claim a drop
// @Tags drops
// @Produce json
// @Param userId path string true "Player ID"
// @Param difficulty path int true "Difficulty 1-5"
// @Success 200 {object} DropClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drop/{userId}/{difficulty} [post]
func (h *DropHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	raw, ok := GetPathParam(r, w, ParamDifficulty)
	if !ok {
		return
	}
	difficulty, err := strconv.Atoi(raw)
	if err != nil || difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidDifficulty)
		return
	}

	result, err := h.service.Claim(r.Context(), userID, difficulty)
	if err != nil {
		respondServiceError(w, r, OpClaimDrop, err)
		return
	}

	respondJSON(w, http.StatusOK, DropClaimResponse{Success: true, ClaimResult: result})
}
