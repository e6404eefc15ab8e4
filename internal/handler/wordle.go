package handler

import (
	"net/http"

	"github.com/hunter-yen/hunter-server/internal/wordle"
)

// WordleHandler serves the word-guessing minigame
type WordleHandler struct {
	service wordle.Service
}

// NewWordleHandler creates a new wordle handler
func NewWordleHandler(service wordle.Service) *WordleHandler {
	return &WordleHandler{service: service}
}

// GuessRequest is the body of a guess
type GuessRequest struct {
	Guess string `json:"guess" validate:"required,max=16"`
}

// HandleStart starts or resumes the game bound to a mission
// @Summary Start word game
// @Tags wordle
// @Produce json
// @Param userId path string true "Player ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} wordle.View
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wordle/{userId}/{taskId}/start [post]
func (h *WordleHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	taskID, ok := GetPathParam(r, w, ParamTaskID)
	if !ok {
		return
	}

	view, err := h.service.Start(r.Context(), userID, taskID)
	if err != nil {
		respondServiceError(w, r, OpStartWordle, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleGuess scores one guess
// @Summary Guess a word
// @Tags wordle
// @Accept json
// @Produce json
// @Param userId path string true "Player ID"
// @Param taskId path string true "Task ID"
// @Param request body GuessRequest true "Five letter guess"
// @Success 200 {object} wordle.GuessResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /wordle/{userId}/{taskId}/guess [post]
func (h *WordleHandler) HandleGuess(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	taskID, ok := GetPathParam(r, w, ParamTaskID)
	if !ok {
		return
	}

	var req GuessRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpGuessWordle); err != nil {
		return
	}

	result, err := h.service.Guess(r.Context(), userID, taskID, req.Guess)
	if err != nil {
		respondServiceError(w, r, OpGuessWordle, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
