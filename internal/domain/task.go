package domain

import "time"

// Task is shared mission reference data.
type Task struct {
	ID          string         `json:"taskId"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Difficulty  int            `json:"difficulty"`
	DurationSec int            `json:"durationSeconds,omitempty"`
	RewardItems []ItemQuantity `json:"rewardItems"`
	RewardScore int            `json:"rewardScore"`
	IsLLM       bool           `json:"isLLM"`
	CheckPlaces []string       `json:"checkPlaces,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Duration is the time allowed after accept; zero means untimed.
func (t *Task) Duration() time.Duration {
	return time.Duration(t.DurationSec) * time.Second
}

// Generated mission tuning
const (
	GeneratedTaskRewardScore = 50
)

// GeneratedDifficulty maps the generator's difficulty labels to task difficulty.
var GeneratedDifficulty = map[string]int{
	"easy":   2,
	"normal": 3,
	"hard":   4,
}
