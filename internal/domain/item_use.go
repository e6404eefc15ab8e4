package domain

import "time"

// ItemUseLog records an applied item use for idempotency.
type ItemUseLog struct {
	UserID    string    `json:"userId"`
	ItemID    string    `json:"itemId"`
	RequestID string    `json:"requestId"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppliedEffect describes one outcome of an item use for client display.
type AppliedEffect struct {
	Type     string `json:"type"`
	ItemID   string `json:"itemId,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
	Buff     string `json:"buff,omitempty"`
	Minutes  int    `json:"minutes,omitempty"`
	Missions int    `json:"missions,omitempty"`
}

// Effect types
const (
	EffectGrantItem       = "grant_item"
	EffectBuff            = "buff"
	EffectRefreshMissions = "refresh_missions"
	EffectExtendMissions  = "extend_missions"
)
