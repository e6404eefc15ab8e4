package player

import "time"

// Optimistic update retry tuning
const (
	DefaultMaxRetries      = 5
	RetryInitialInterval   = 10 * time.Millisecond
	RetryMaxInterval       = 200 * time.Millisecond
	RetryMaxElapsedTime    = 2 * time.Second
	RetryRandomizationSpan = 0.5
)

// Username limits
const (
	MinUsernameLength = 2
	MaxUsernameLength = 32
)

// Log messages
const (
	LogMsgVersionConflictRetry = "Player version conflict, retrying"
	LogMsgPlayerRegistered     = "Player registered"
	LogMsgFailedToSeedMissions = "Failed to seed missions for new player"
	LogMsgFailedToPublish      = "Failed to publish player event"
)
