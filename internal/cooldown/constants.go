package cooldown

import "time"

// Action names
const (
	ActionStonePile = "stone_pile"
	ActionTrade     = "merchant_trade"
	ActionBless     = "tree_bless"
	ActionSupply    = "supply_station"
)

// DefaultCooldownDuration applies to interval actions without an override
const DefaultCooldownDuration = 15 * time.Minute

// DateLayout is the UTC calendar-day key format
const DateLayout = "2006-01-02"

// Error message formats
const (
	ErrFmtCooldownWithMinutes = "action '%s' on cooldown: %dm %ds remaining"
	ErrFmtCooldownSecondsOnly = "action '%s' on cooldown: %ds remaining"
)
