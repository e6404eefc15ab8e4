package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/wordle"
)

func TestHandleWordleStart(t *testing.T) {
	t.Run("Started", func(t *testing.T) {
		svc := &MockWordleService{}
		svc.On("Start", mock.Anything, "p1", "t1").Return(&wordle.View{
			TaskID: "t1", WordLength: 5, MaxAttempts: 6, Remaining: 6, Status: wordle.StatusPlaying,
		}, nil)
		h := NewWordleHandler(svc)

		w := serve(http.MethodPost, "/wordle/{userId}/{taskId}/start", "/wordle/p1/t1/start", nil, h.HandleStart)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"remaining":6`)
		assert.NotContains(t, w.Body.String(), `"word"`)
	})

	t.Run("Mission Not Held", func(t *testing.T) {
		svc := &MockWordleService{}
		svc.On("Start", mock.Anything, "p1", "t1").Return(nil, domain.ErrMissionNotFound)
		h := NewWordleHandler(svc)

		w := serve(http.MethodPost, "/wordle/{userId}/{taskId}/start", "/wordle/p1/t1/start", nil, h.HandleStart)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleWordleGuess(t *testing.T) {

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockWordleService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Scored",
			body: GuessRequest{Guess: "house"},
			setupMock: func(m *MockWordleService) {
				m.On("Guess", mock.Anything, "p1", "t1", "house").Return(&wordle.GuessResult{
					Game: wordle.View{TaskID: "t1", Status: wordle.StatusPlaying, Remaining: 5},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"remaining":5`,
		},
		{
			name:           "Empty Guess",
			body:           GuessRequest{},
			setupMock:      func(m *MockWordleService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Letters",
			body: GuessRequest{Guess: "h0use"},
			setupMock: func(m *MockWordleService) {
				m.On("Guess", mock.Anything, "p1", "t1", "h0use").Return(nil, domain.ErrInvalidGuess)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidGuessError,
		},
		{
			name: "Game Over",
			body: GuessRequest{Guess: "house"},
			setupMock: func(m *MockWordleService) {
				m.On("Guess", mock.Anything, "p1", "t1", "house").Return(nil, domain.ErrGameOver)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgGameOverError,
		},
		{
			name: "No Game",
			body: GuessRequest{Guess: "house"},
			setupMock: func(m *MockWordleService) {
				m.On("Guess", mock.Anything, "p1", "t1", "house").Return(nil, domain.ErrGameNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgGameNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockWordleService{}
			tt.setupMock(svc)
			h := NewWordleHandler(svc)

			w := serve(http.MethodPost, "/wordle/{userId}/{taskId}/guess", "/wordle/p1/t1/guess", tt.body, h.HandleGuess)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
