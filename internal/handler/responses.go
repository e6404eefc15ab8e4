package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Message mirrors Error for
// clients that read the message field.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

var encodeBuffers = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

// respondJSON encodes payload before touching the response, so an encoding
// failure can still become a 500 instead of a truncated body.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `","message":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Message: message})
}

// respondServiceError logs a failed service call and maps it to a client response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPlayerNotFoundError    = "Player not found"
	ErrMsgUsernameTakenError     = "Username is already taken"
	ErrMsgTaskNotFoundError      = "Task not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgEventNotFoundError     = "Event not found"
	ErrMsgOptionNotFoundError    = "Event option not found"
	ErrMsgStationNotFoundError   = "Supply station not found"
	ErrMsgInvalidDifficultyError = "Invalid difficulty"
	ErrMsgMissionNotFoundError   = "Mission not found"
	ErrMsgInvalidStateError      = "Mission is not in a state that allows this action"
	ErrMsgInvalidStateFormat     = "Cannot %s a mission that is %s"
	ErrMsgMissionSlotsFullError  = "All mission slots are taken"
	ErrMsgInsufficientItemsError = "Not enough items"
	ErrMsgNoStockError           = "You don't have that item"
	ErrMsgDuplicateRequestError  = "This request was already processed"
	ErrMsgKeyUseNotAllowedError  = "Keys can only be used to open treasure chests"
	ErrMsgItemNotUsableError     = "That item cannot be used"
	ErrMsgNotCraftableError      = "That item cannot be crafted"
	ErrMsgGameNotFoundError      = "No word game in progress"
	ErrMsgGameOverError          = "The word game is already over"
	ErrMsgInvalidGuessError      = "Guess must be 5 letters A-Z"
	ErrMsgOnCooldownError        = "Action is on cooldown. Try again later"
	ErrMsgVersionConflictError   = "Too many concurrent updates. Please retry"
	ErrMsgInvalidInputError      = "Invalid input"
)

type errorMapping struct {
	target error
	status int
	msg    string
}

// errorMappings is checked in order; the first errors.Is match wins
var errorMappings = []errorMapping{
	{domain.ErrPlayerNotFound, http.StatusNotFound, ErrMsgPlayerNotFoundError},
	{domain.ErrUsernameTaken, http.StatusConflict, ErrMsgUsernameTakenError},
	{domain.ErrTaskNotFound, http.StatusNotFound, ErrMsgTaskNotFoundError},
	{domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
	{domain.ErrEventNotFound, http.StatusNotFound, ErrMsgEventNotFoundError},
	{domain.ErrOptionNotFound, http.StatusBadRequest, ErrMsgOptionNotFoundError},
	{domain.ErrStationNotFound, http.StatusNotFound, ErrMsgStationNotFoundError},
	{domain.ErrInvalidDifficulty, http.StatusBadRequest, ErrMsgInvalidDifficultyError},
	{domain.ErrMissionNotFound, http.StatusNotFound, ErrMsgMissionNotFoundError},
	{domain.ErrInvalidState, http.StatusBadRequest, ErrMsgInvalidStateError},
	{domain.ErrMissionSlotsFull, http.StatusBadRequest, ErrMsgMissionSlotsFullError},
	{domain.ErrInsufficientQuantity, http.StatusBadRequest, ErrMsgInsufficientItemsError},
	{domain.ErrNoStock, http.StatusBadRequest, ErrMsgNoStockError},
	{domain.ErrDuplicateRequest, http.StatusConflict, ErrMsgDuplicateRequestError},
	{domain.ErrKeyUseNotAllowed, http.StatusBadRequest, ErrMsgKeyUseNotAllowedError},
	{domain.ErrItemFuncNotRegistered, http.StatusBadRequest, ErrMsgItemNotUsableError},
	{domain.ErrNotCraftable, http.StatusBadRequest, ErrMsgNotCraftableError},
	{domain.ErrGameNotFound, http.StatusNotFound, ErrMsgGameNotFoundError},
	{domain.ErrGameOver, http.StatusBadRequest, ErrMsgGameOverError},
	{domain.ErrInvalidGuess, http.StatusBadRequest, ErrMsgInvalidGuessError},
	{domain.ErrOnCooldown, http.StatusTooManyRequests, ErrMsgOnCooldownError},
	{domain.ErrVersionConflict, http.StatusConflict, ErrMsgVersionConflictError},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidInputError},
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Anything unrecognised is reported as a generic server error.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}
	// The current state is safe to show and helps clients resync
	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidStateFormat, stateErr.Action, stateErr.State)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
