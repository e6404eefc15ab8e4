package itemuse

import "time"

// Item function keys
const (
	FuncSpawnSlimeSmall     = "spawn_slime_small"
	FuncSpawnSlimeBig       = "spawn_slime_big"
	FuncTreasureMapTrigger  = "treasure_map_trigger"
	FuncHourglassRefresh    = "hourglass_speed_refresh"
	FuncHourglassExtend     = "hourglass_slow_extend"
	FuncTorchBuff           = "torch_buff"
	FuncAncientBranchBuff   = "ancient_branch_buff"
	defaultRegistryCapacity = 8
)

// Effect tuning
const (
	TreasureMapBuffTTL   = 24 * time.Hour
	TorchBuffTTL         = 7 * 24 * time.Hour
	AncientBranchBuffTTL = 2 * time.Hour
	HourglassExtendBy    = 15 * time.Minute

	TorchDamageMultiplier    = 2
	AncientBranchExtraRoll   = 1
	AncientBranchRarityBoost = 1
	AncientBranchRarityCap   = 5
)

// Log messages
const (
	LogMsgItemUsed             = "Item used"
	LogMsgDuplicateRequest     = "Duplicate item use request"
	LogMsgFailedToBeginTx      = "Failed to begin transaction"
	LogMsgFailedToCommitTx     = "Failed to commit transaction"
	LogMsgFailedToPublish      = "Failed to publish item use event"
	LogMsgEffectFailed         = "Item effect failed"
	LogMsgNoEffectRegistered   = "No effect registered for item function"
	LogMsgMissingItemUseLogKey = "Item use without request id is not idempotent"
)

// Error contexts
const (
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToCommitTx = "failed to commit transaction"
	ErrContextFailedToLogUse   = "failed to record item use"
)
