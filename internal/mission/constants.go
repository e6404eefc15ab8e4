package mission

import "time"

// Timing rules
const (
	// DeclineCooldown is how long a declined slot waits before it can be replaced
	DeclineCooldown = 5 * time.Hour
)

// Actions name the transitions for logs, events and the HTTP surface
const (
	ActionAccept    = "accept"
	ActionDecline   = "decline"
	ActionComplete  = "complete"
	ActionClaim     = "claim"
	ActionCheck     = "check"
	ActionForfeit   = "forfeit"
	ActionGenerate  = "generate"
	ActionRefresh   = "refresh"
	GeneratedPrefix = "llm_"
)

// Generated mission defaults
const (
	DefaultGeneratedDifficulty = 3
	MaxGeneratedNameLength     = 64
)

// Log messages
const (
	LogMsgMissionTransitioned  = "Mission transitioned"
	LogMsgMissionsRefreshed    = "Missions refreshed"
	LogMsgGeneratedMission     = "Generated mission created"
	LogMsgFailedToRetireTask   = "Failed to retire generated task"
	LogMsgFailedToPublish      = "Failed to publish mission event"
	LogMsgFailedToRollRewards  = "Failed to roll generated mission rewards"
	LogMsgRollbackGeneratedMsn = "Rolling back generated task after failed assignment"
)

// Error contexts
const (
	ErrContextFailedToLoadTasks = "failed to load tasks"
	ErrContextFailedToSaveTask  = "failed to save generated task"
)
