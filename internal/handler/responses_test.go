package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/cooldown"
	"github.com/hunter-yen/hunter-server/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{"not found wrapped", fmt.Errorf("load: %w", domain.ErrPlayerNotFound), http.StatusNotFound, ErrMsgPlayerNotFoundError},
		{"duplicate", domain.ErrDuplicateRequest, http.StatusConflict, ErrMsgDuplicateRequestError},
		{"insufficient", fmt.Errorf("%w: copper_piece", domain.ErrInsufficientQuantity), http.StatusBadRequest, ErrMsgInsufficientItemsError},
		{"version conflict", domain.ErrVersionConflict, http.StatusConflict, ErrMsgVersionConflictError},
		{"cooldown", &cooldown.ErrOnCooldown{Action: "supply"}, http.StatusTooManyRequests, ErrMsgOnCooldownError},
		{"invalid state", &domain.InvalidStateError{TaskID: "t1", Action: "claim", State: domain.MissionAvailable},
			http.StatusBadRequest, "Cannot claim a mission that is available"},
		{"unknown", errors.New("pq: relation does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondJSON(t *testing.T) {
	t.Run("writes status and body", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondJSON(w, http.StatusCreated, SuccessResponse{Message: "done"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"done"}`, w.Body.String())
	})

	t.Run("unencodable payload becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"`+ErrMsgGenericServerError+`","message":"`+ErrMsgGenericServerError+`"}`, w.Body.String())
	})
}

func TestRespondServiceError_CarriesMessage(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"insufficient stock", domain.ErrNoStock, http.StatusBadRequest, ErrMsgNoStockError},
		{"missing player", domain.ErrPlayerNotFound, http.StatusNotFound, ErrMsgPlayerNotFoundError},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/items/use/p1/torch", nil)

			respondServiceError(w, r, OpUseItem, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMsg, body.Message)
			assert.Equal(t, tt.expectedMsg, body.Error)
		})
	}
}
