package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter error messages
	ErrMsgMissingPathParam  = "Missing %s path parameter"
	ErrMsgInvalidDifficulty = "Difficulty must be a number between 1 and 5"
	ErrMsgUnknownAction     = "Unknown mission action"

	// Operation names used in logs
	OpRegisterPlayer  = "Register player"
	OpGetPlayer       = "Get player"
	OpPlayerHistory   = "Player history"
	OpListMissions    = "List missions"
	OpMissionAction   = "Mission action"
	OpCheckPlace      = "Check place"
	OpRefreshMissions = "Refresh missions"
	OpCreateGenerated = "Create generated mission"
	OpListItems       = "List items"
	OpUseItem         = "Use item"
	OpCraftItem       = "Craft item"
	OpClaimDrop       = "Claim drop"
	OpOpenChest       = "Open treasure chest"
	OpTrade           = "Merchant trade"
	OpBless           = "Tree bless"
	OpAttackSlime     = "Attack slime"
	OpStonePile       = "Stone pile"
	OpEventOptions    = "Event options"
	OpListStations    = "List supply stations"
	OpClaimSupply     = "Claim supply station"
	OpStartWordle     = "Start word game"
	OpGuessWordle     = "Guess word"
	OpGetLeaderboard  = "Get leaderboard"
)

// Path parameter names
const (
	ParamUserID     = "userId"
	ParamTaskID     = "taskId"
	ParamItemID     = "itemId"
	ParamAction     = "action"
	ParamDifficulty = "difficulty"
	ParamStationID  = "stationId"
	ParamKind       = "kind"
)

// HeaderRequestID carries the idempotency key of an item use
const HeaderRequestID = "X-Request-ID"
