package encounter

// Encounter names reported on events and metrics
const (
	EncounterChest     = "treasure_chest"
	EncounterTrade     = "merchant_trade"
	EncounterBless     = "tree_bless"
	EncounterSlime     = "slime"
	EncounterStonePile = "stone_pile"
	EncounterSupply    = "supply_station"
)

// Option tables exposed to clients
const (
	OptionsMerchant = "merchant"
	OptionsTree     = "tree"
)

// Player-facing outcome messages
const (
	MsgChestOpened        = "Treasure chest opened"
	MsgNoKey              = "You need a matching key to open this chest"
	MsgTradeDone          = "Trade complete"
	MsgBlessDone          = "The ancient tree accepts your offering"
	MsgNotEnoughItems     = "You do not have enough items for this option"
	MsgSlimeDefeated      = "Slime defeated"
	MsgStonePileFound     = "You searched the stone pile"
	MsgStonePileDoneToday = "You already searched a stone pile today"
	MsgTradeDoneToday     = "The merchant has already traded with you today"
	MsgBlessDoneToday     = "The ancient tree already blessed you today"
	MsgSupplyClaimed      = "Supplies collected"
	MsgSupplyCooldown     = "This supply station is restocking"
)

// Log messages
const (
	LogMsgEncounterResolved = "Encounter resolved"
	LogMsgEncounterRejected = "Encounter rejected"
	LogMsgFailedToPublish   = "Failed to publish encounter event"
)

// Error contexts
const (
	ErrContextFailedToLoadDropTable = "failed to load drop table"
)
