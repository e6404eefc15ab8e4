package handler

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/itemuse"
)

// ItemLister exposes the cached item catalog
type ItemLister interface {
	List(ctx context.Context) ([]domain.Item, error)
}

// ItemHandler serves the catalog and item use
type ItemHandler struct {
	catalog ItemLister
	service itemuse.Service
}

// NewItemHandler creates a new item handler
func NewItemHandler(catalog ItemLister, service itemuse.Service) *ItemHandler {
	return &ItemHandler{catalog: catalog, service: service}
}

// UseItemRequest carries the idempotency key of a use.
// An empty body is accepted; the X-Request-ID header is the fallback.
type UseItemRequest struct {
	RequestID string `json:"requestId" validate:"max=128"`
}

// UseItemResponse is the body of a successful use
type UseItemResponse struct {
	Success bool `json:"success"`
	*itemuse.UseResult
}

// HandleList returns every item definition
// @Summary List items
// @Tags items
// @Produce json
// @Success 200 {array} domain.Item
// @Router /items [get]
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		respondServiceError(w, r, OpListItems, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// HandleUse consumes one item and applies its effect at most once per request ID
// @Summary Use item
// @Tags items
// @Accept json
// @Produce json
// @Param userId path string true "Player ID"
// @Param itemId path string true "Item ID"
// @Param request body UseItemRequest false "Idempotency key"
// @Success 200 {object} UseItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /items/use/{userId}/{itemId} [post]
func (h *ItemHandler) HandleUse(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}
	itemID, ok := GetPathParam(r, w, ParamItemID)
	if !ok {
		return
	}

	req, ok := decodeUseItemRequest(w, r)
	if !ok {
		return
	}
	if req.RequestID == "" {
		req.RequestID = strings.TrimSpace(r.Header.Get(HeaderRequestID))
	}

	result, err := h.service.UseItem(r.Context(), userID, itemID, req.RequestID)
	if err != nil {
		respondServiceError(w, r, OpUseItem, err)
		return
	}

	respondJSON(w, http.StatusOK, UseItemResponse{Success: true, UseResult: result})
}

// decodeUseItemRequest tolerates an empty body, including a chunked one
// with no declared length
func decodeUseItemRequest(w http.ResponseWriter, r *http.Request) (UseItemRequest, bool) {
	var req UseItemRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}
	body := bufio.NewReader(r.Body)
	if _, err := body.Peek(1); errors.Is(err, io.EOF) {
		return req, true
	}
	r.Body = io.NopCloser(body)
	err := DecodeAndValidateRequest(r, w, &req, OpUseItem)
	return req, err == nil
}
