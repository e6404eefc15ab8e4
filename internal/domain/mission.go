package domain

import "time"

// MissionState is the lifecycle state of a mission slot.
type MissionState string

const (
	MissionAvailable  MissionState = "available"
	MissionInProgress MissionState = "in_progress"
	MissionCompleted  MissionState = "completed"
	MissionClaimed    MissionState = "claimed"
	MissionDeclined   MissionState = "declined"
	MissionDeleted    MissionState = "deleted"
)

// MaxMissionSlots is the number of concurrent missions a player holds.
const MaxMissionSlots = 5

// Mission is a player's progress against a Task.
type Mission struct {
	TaskID      string       `json:"taskId"`
	State       MissionState `json:"state"`
	AcceptedAt  *time.Time   `json:"acceptedAt,omitempty"`
	ExpiresAt   *time.Time   `json:"expiresAt,omitempty"`
	RefreshedAt *time.Time   `json:"refreshedAt,omitempty"`
	CheckPlaces []CheckPlace `json:"haveCheckPlaces,omitempty"`
}

// CheckPlace is one location a mission requires the player to visit.
type CheckPlace struct {
	Place   string `json:"place"`
	Checked bool   `json:"checked"`
}

// Clone deep-copies the mission.
func (m Mission) Clone() Mission {
	c := m
	c.AcceptedAt = cloneTime(m.AcceptedAt)
	c.ExpiresAt = cloneTime(m.ExpiresAt)
	c.RefreshedAt = cloneTime(m.RefreshedAt)
	c.CheckPlaces = append([]CheckPlace(nil), m.CheckPlaces...)
	return c
}

// IsOvertime reports whether the mission passed its deadline at now.
func (m Mission) IsOvertime(now time.Time) bool {
	return m.ExpiresAt != nil && now.After(*m.ExpiresAt)
}

// MissionView joins a mission with its task for display.
type MissionView struct {
	Mission
	Task *Task `json:"task,omitempty"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
