package handler

import (
	"net/http"

	"github.com/hunter-yen/hunter-server/internal/crafting"
)

// CraftingHandler serves material crafting
type CraftingHandler struct {
	service crafting.Service
}

// NewCraftingHandler creates a new crafting handler
func NewCraftingHandler(service crafting.Service) *CraftingHandler {
	return &CraftingHandler{service: service}
}

// CraftRequest names the material to combine
type CraftRequest struct {
	ItemID string `json:"itemId" validate:"required,max=64"`
}

// CraftResponse is the body of a successful craft
type CraftResponse struct {
	Success bool `json:"success"`
	*crafting.CraftResult
}

// HandleCraft turns three of a material into its result item
// @Summary Craft an item
// @Description Consumes 3 of the material and grants 1 of its result item.
// @Tags items
// @Accept json
// @Produce json
// @Param userId path string true "Player ID"
// @Param request body CraftRequest true "Material item"
// @Success 200 {object} CraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{userId}/craft [post]
func (h *CraftingHandler) HandleCraft(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, ParamUserID)
	if !ok {
		return
	}

	var req CraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpCraftItem); err != nil {
		return
	}

	result, err := h.service.Craft(r.Context(), userID, req.ItemID)
	if err != nil {
		respondServiceError(w, r, OpCraftItem, err)
		return
	}
	respondJSON(w, http.StatusOK, CraftResponse{Success: true, CraftResult: result})
}
