package handler

import (
	"net/http"

	"github.com/hunter-yen/hunter-server/internal/encounter"
)

// EncounterHandler serves the map events
type EncounterHandler struct {
	service encounter.Service
}

// NewEncounterHandler creates a new encounter handler
func NewEncounterHandler(service encounter.Service) *EncounterHandler {
	return &EncounterHandler{service: service}
}

// OpenChestRequest is the body of POST /events/treasurebox/open
type OpenChestRequest struct {
	UserID  string `json:"userId" validate:"required"`
	KeyType string `json:"keyType" validate:"required,max=32"`
}

// ExchangeRequest is the body of the merchant and ancient tree events
type ExchangeRequest struct {
	UserID    string `json:"userId" validate:"required"`
	OptionKey string `json:"optionKey" validate:"required,max=64"`
}

// SlimeAttackRequest carries the hits the client observed.
// The server clamps every hit, so the values are only a claim.
type SlimeAttackRequest struct {
	UserID string `json:"userId" validate:"required"`
	Hits   []int  `json:"hits" validate:"max=100"`
}

// UserRequest is a body that only names the player
type UserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// HandleOpenChest opens a treasure chest with a key of the given tier
// @Summary Open treasure chest
// @Tags events
// @Accept json
// @Produce json
// @Param request body OpenChestRequest true "Player and key tier"
// @Success 200 {object} domain.EventOutcome
// @Failure 400 {object} ErrorResponse
// @Router /events/treasurebox/open [post]
func (h *EncounterHandler) HandleOpenChest(w http.ResponseWriter, r *http.Request) {
	var req OpenChestRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpOpenChest); err != nil {
		return
	}

	out, err := h.service.OpenChest(r.Context(), req.UserID, req.KeyType)
	if err != nil {
		respondServiceError(w, r, OpOpenChest, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleTrade exchanges items with the wandering merchant
// @Summary Merchant trade
// @Tags events
// @Accept json
// @Produce json
// @Param request body ExchangeRequest true "Player and option"
// @Success 200 {object} domain.EventOutcome
// @Failure 400 {object} ErrorResponse
// @Router /events/trade [post]
func (h *EncounterHandler) HandleTrade(w http.ResponseWriter, r *http.Request) {
	var req ExchangeRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpTrade); err != nil {
		return
	}

	out, err := h.service.Trade(r.Context(), req.UserID, req.OptionKey)
	if err != nil {
		respondServiceError(w, r, OpTrade, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleBless makes an offering to the ancient tree
// @Summary Tree bless
// @Tags events
// @Accept json
// @Produce json
// @Param request body ExchangeRequest true "Player and option"
// @Success 200 {object} domain.EventOutcome
// @Failure 400 {object} ErrorResponse
// @Router /events/bless [post]
func (h *EncounterHandler) HandleBless(w http.ResponseWriter, r *http.Request) {
	var req ExchangeRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpBless); err != nil {
		return
	}

	out, err := h.service.Bless(r.Context(), req.UserID, req.OptionKey)
	if err != nil {
		respondServiceError(w, r, OpBless, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleSlimeAttack resolves a slime fight
// @Summary Attack slime
// @Tags events
// @Accept json
// @Produce json
// @Param request body SlimeAttackRequest true "Player and hits"
// @Success 200 {object} domain.EventOutcome
// @Failure 400 {object} ErrorResponse
// @Router /events/slime/attack [post]
func (h *EncounterHandler) HandleSlimeAttack(w http.ResponseWriter, r *http.Request) {
	var req SlimeAttackRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpAttackSlime); err != nil {
		return
	}

	out, err := h.service.AttackSlime(r.Context(), req.UserID, req.Hits)
	if err != nil {
		respondServiceError(w, r, OpAttackSlime, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleStonePile searches the daily stone pile
// @Summary Stone pile
// @Tags events
// @Accept json
// @Produce json
// @Param request body UserRequest true "Player"
// @Success 200 {object} domain.EventOutcome
// @Router /events/stonepile [post]
func (h *EncounterHandler) HandleStonePile(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpStonePile); err != nil {
		return
	}

	out, err := h.service.TriggerStonePile(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, OpStonePile, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleOptions lists the choices of an exchange event
// @Summary Event options
// @Tags events
// @Produce json
// @Param kind path string true "merchant or tree"
// @Success 200 {array} domain.EventOption
// @Failure 404 {object} ErrorResponse
// @Router /events/{kind}/options [get]
func (h *EncounterHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	kind, ok := GetPathParam(r, w, ParamKind)
	if !ok {
		return
	}

	options, err := h.service.Options(kind)
	if err != nil {
		respondServiceError(w, r, OpEventOptions, err)
		return
	}
	respondJSON(w, http.StatusOK, options)
}

// HandleListStations lists the supply stations
// @Summary List supply stations
// @Tags supply
// @Produce json
// @Success 200 {array} domain.SupplyStation
// @Router /supply-stations [get]
func (h *EncounterHandler) HandleListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.service.ListStations(r.Context())
	if err != nil {
		respondServiceError(w, r, OpListStations, err)
		return
	}
	respondJSON(w, http.StatusOK, stations)
}

// HandleClaimSupply claims a supply station's roll
// @Summary Claim supply station
// @Tags supply
// @Accept json
// @Produce json
// @Param stationId path string true "Station ID"
// @Param request body UserRequest true "Player"
// @Success 200 {object} domain.EventOutcome
// @Failure 404 {object} ErrorResponse
// @Router /supply-stations/{stationId}/claim [post]
func (h *EncounterHandler) HandleClaimSupply(w http.ResponseWriter, r *http.Request) {
	stationID, ok := GetPathParam(r, w, ParamStationID)
	if !ok {
		return
	}

	var req UserRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpClaimSupply); err != nil {
		return
	}

	out, err := h.service.ClaimSupply(r.Context(), req.UserID, stationID)
	if err != nil {
		respondServiceError(w, r, OpClaimSupply, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
