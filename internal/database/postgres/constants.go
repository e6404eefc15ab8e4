package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Player Operations
const (
	ErrMsgInvalidUserID            = "invalid user id"
	ErrMsgFailedToGetPlayer        = "failed to get player"
	ErrMsgFailedToInsertPlayer     = "failed to insert player"
	ErrMsgFailedToUpdatePlayer     = "failed to update player"
	ErrMsgFailedToMarshalPlayer    = "failed to marshal player state"
	ErrMsgFailedToUnmarshalPlayer  = "failed to unmarshal player state"
	ErrMsgFailedToGetLeaderboard   = "failed to get leaderboard"
	ErrMsgFailedToGetPlayerRank    = "failed to get player rank"
	ErrMsgFailedToCheckItemUseLog  = "failed to check item use log"
	ErrMsgFailedToInsertItemUseLog = "failed to insert item use log"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetTask         = "failed to get task"
	ErrMsgFailedToListTasks       = "failed to list tasks"
	ErrMsgFailedToInsertTask      = "failed to insert task"
	ErrMsgFailedToDeleteTask      = "failed to delete task"
	ErrMsgFailedToGetItem         = "failed to get item"
	ErrMsgFailedToListItems       = "failed to list items"
	ErrMsgFailedToGetDropRule     = "failed to get drop rule"
	ErrMsgFailedToGetDropPools    = "failed to get drop pools"
	ErrMsgFailedToGetStation      = "failed to get supply station"
	ErrMsgFailedToListStations    = "failed to list supply stations"
	ErrMsgFailedToSeedCatalog     = "failed to seed catalog"
	ErrMsgFailedToMarshalCatalog  = "failed to marshal catalog data"
	ErrMsgFailedToUnmarshalRecord = "failed to unmarshal catalog data"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToMarshalEvent  = "failed to marshal event"
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToGetEvents     = "failed to get events"
	ErrMsgFailedToCleanupEvents = "failed to cleanup events"

	DefaultEventHistoryLimit = 50
)

// Log Messages
const (
	LogMsgCatalogSeeded = "Catalog seeded"
)

// Shared column lists
const (
	playerColumns = `user_id, username, score, version, backpack, missions, buffs, cooldowns, created_at, updated_at`
	taskColumns   = `task_id, name, description, difficulty, duration_sec, reward_items, reward_score, is_llm, check_places, created_at`
	itemColumns   = `item_id, name, description, func, type, rarity, result_id`
)
