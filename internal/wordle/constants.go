package wordle

import "time"

// Game rules
const (
	WordLength         = 5
	DefaultMaxAttempts = 6
	DefaultTTL         = 24 * time.Hour
	DefaultMemoryGames = 4096
)

// KeyPrefix namespaces game keys in shared stores
const KeyPrefix = "hunter:wordle:"

// Log messages
const (
	LogMsgGameStarted           = "Word game started"
	LogMsgGameResumed           = "Word game resumed"
	LogMsgGameFinished          = "Word game finished"
	LogMsgFailedToSyncMission   = "Failed to apply word game result to mission"
	LogMsgFailedToPublish       = "Failed to publish word game event"
	LogMsgUsingRedisGameStore   = "Using Redis word game store"
	LogMsgUsingMemoryGameStore  = "Using in-memory word game store"
	ErrContextFailedToLoadGame  = "failed to load game"
	ErrContextFailedToSaveGame  = "failed to save game"
	ErrContextFailedToEncodeGame = "failed to encode game"
)
