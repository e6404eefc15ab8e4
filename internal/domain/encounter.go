package domain

// SupplyStation is a map location that periodically hands out drops.
type SupplyStation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// EventReward is what an event option pays out.
type EventReward struct {
	Score int            `json:"score"`
	Items []ItemQuantity `json:"items"`
}

// EventOption is one choice of an exchange event.
type EventOption struct {
	Key     string         `json:"key"`
	Text    string         `json:"text"`
	Consume []ItemQuantity `json:"consume,omitempty"`
	Rewards EventReward    `json:"rewards"`
}

// EventOutcome is returned by every event handler.
type EventOutcome struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Score   int            `json:"score,omitempty"`
	Rewards []ItemQuantity `json:"rewards,omitempty"`
	Drops   []string       `json:"drops,omitempty"`
}
