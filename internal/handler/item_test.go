package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/drop"
	"github.com/hunter-yen/hunter-server/internal/itemuse"
)

const usePattern = "/items/use/{userId}/{itemId}"

func TestHandleListItems(t *testing.T) {
	catalog := &MockItemLister{}
	catalog.On("List", mock.Anything).Return([]domain.Item{
		{ID: "torch", Name: "火把", Func: "torch_buff", Rarity: 2},
	}, nil)
	h := NewItemHandler(catalog, &MockItemUseService{})

	w := serve(http.MethodGet, "/items", "/items", nil, h.HandleList)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "torch_buff")
	catalog.AssertExpectations(t)
}

func TestHandleUseItem(t *testing.T) {

	result := &itemuse.UseResult{
		Backpack: []domain.BackpackItem{{ItemID: "copper_piece", Quantity: 2}},
		Buffs:    []domain.Buff{},
		Effects:  []domain.AppliedEffect{{Type: "grant_item", ItemID: "copper_piece", Quantity: 2}},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*MockItemUseService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success With Request ID",
			body: UseItemRequest{RequestID: "req-1"},
			setupMock: func(m *MockItemUseService) {
				m.On("UseItem", mock.Anything, "p1", "slime_small", "req-1").Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"success":true`,
		},
		{
			name: "Success Without Body",
			body: nil,
			setupMock: func(m *MockItemUseService) {
				m.On("UseItem", mock.Anything, "p1", "slime_small", "").Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"backpackItems"`,
		},
		{
			name: "Duplicate Request",
			body: UseItemRequest{RequestID: "req-1"},
			setupMock: func(m *MockItemUseService) {
				m.On("UseItem", mock.Anything, "p1", "slime_small", "req-1").Return(nil, domain.ErrDuplicateRequest)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgDuplicateRequestError,
		},
		{
			name: "No Stock",
			body: UseItemRequest{RequestID: "req-2"},
			setupMock: func(m *MockItemUseService) {
				m.On("UseItem", mock.Anything, "p1", "slime_small", "req-2").Return(nil, domain.ErrNoStock)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNoStockError,
		},
		{
			name: "Key Rejected",
			body: UseItemRequest{RequestID: "req-3"},
			setupMock: func(m *MockItemUseService) {
				m.On("UseItem", mock.Anything, "p1", "slime_small", "req-3").Return(nil, domain.ErrKeyUseNotAllowed)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgKeyUseNotAllowedError,
		},
		{
			name:           "Malformed Body",
			body:           `{"requestId":`,
			setupMock:      func(m *MockItemUseService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockItemUseService{}
			tt.setupMock(svc)
			h := NewItemHandler(&MockItemLister{}, svc)

			w := serve(http.MethodPost, usePattern, "/items/use/p1/slime_small", tt.body, h.HandleUse)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleUseItem_RequestIDHeader(t *testing.T) {
	svc := &MockItemUseService{}
	svc.On("UseItem", mock.Anything, "p1", "torch", "hdr-9").Return(&itemuse.UseResult{}, nil)
	h := NewItemHandler(&MockItemLister{}, svc)

	r := chi.NewRouter()
	r.Post(usePattern, h.HandleUse)
	req := httptest.NewRequest(http.MethodPost, "/items/use/p1/torch", nil)
	req.Header.Set(HeaderRequestID, "hdr-9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleUseItem_EmptyChunkedBody(t *testing.T) {
	svc := &MockItemUseService{}
	svc.On("UseItem", mock.Anything, "p1", "torch", "hdr-10").Return(&itemuse.UseResult{}, nil)
	h := NewItemHandler(&MockItemLister{}, svc)

	r := chi.NewRouter()
	r.Post(usePattern, h.HandleUse)
	req := httptest.NewRequest(http.MethodPost, "/items/use/p1/torch", io.NopCloser(strings.NewReader("")))
	req.ContentLength = -1
	req.Header.Set(HeaderRequestID, "hdr-10")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleUseItem_ChunkedBodyIsDecoded(t *testing.T) {
	svc := &MockItemUseService{}
	svc.On("UseItem", mock.Anything, "p1", "torch", "body-1").Return(&itemuse.UseResult{}, nil)
	h := NewItemHandler(&MockItemLister{}, svc)

	r := chi.NewRouter()
	r.Post(usePattern, h.HandleUse)
	req := httptest.NewRequest(http.MethodPost, "/items/use/p1/torch", io.NopCloser(strings.NewReader(`{"requestId":"body-1"}`)))
	req.ContentLength = -1
	req.Header.Set(HeaderRequestID, "hdr-ignored")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleDropClaim(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*MockDropService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			target: "/drop/p1/3",
			setupMock: func(m *MockDropService) {
				m.On("Claim", mock.Anything, "p1", 3).Return(&drop.ClaimResult{
					ItemIDs: []string{"copper_piece"},
					Drops:   []string{"銅幣"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"drops":["銅幣"]`,
		},
		{
			name:           "Not A Number",
			target:         "/drop/p1/hard",
			setupMock:      func(m *MockDropService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidDifficulty,
		},
		{
			name:           "Below Range",
			target:         "/drop/p1/0",
			setupMock:      func(m *MockDropService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidDifficulty,
		},
		{
			name:           "Out Of Range",
			target:         "/drop/p1/6",
			setupMock:      func(m *MockDropService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidDifficulty,
		},
		{
			name:   "Player Missing",
			target: "/drop/ghost/1",
			setupMock: func(m *MockDropService) {
				m.On("Claim", mock.Anything, "ghost", 1).Return(nil, domain.ErrPlayerNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgPlayerNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockDropService{}
			tt.setupMock(svc)
			h := NewDropHandler(svc)

			w := serve(http.MethodPost, "/drop/{userId}/{difficulty}", tt.target, nil, h.HandleClaim)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
