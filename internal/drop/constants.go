package drop

// Drop sources reported on resolution events
const (
	SourceClaim   = "drop_claim"
	SourceChest   = "treasure_chest"
	SourceSupply  = "supply_station"
	SourceMission = "generated_mission"
)

// Log messages
const (
	LogMsgDropsResolved   = "Drops resolved"
	LogMsgDropsClaimed    = "Drops claimed"
	LogMsgFailedToPublish = "Failed to publish drop event"
)

// Error contexts
const (
	ErrContextFailedToLoadRule  = "failed to load drop rule"
	ErrContextFailedToLoadPools = "failed to load drop pools"
)
