package cooldown

import (
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown values and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Gate evaluates per-player cooldowns stored on the player record.
// It holds no state of its own; callers persist the returned marks together
// with the reward in one player update.
type Gate struct {
	config Config
}

// NewGate creates a gate
func NewGate(config Config) *Gate {
	return &Gate{config: config}
}

// DayKey returns the UTC calendar date of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// CheckDaily allows one action per UTC calendar day. lastDate is a DayKey or empty.
// Dates are compared as strings, so the boundary is UTC midnight regardless of elapsed time.
func (g *Gate) CheckDaily(action, lastDate string, now time.Time) error {
	if g.config.DevMode || lastDate == "" {
		return nil
	}
	if lastDate != DayKey(now) {
		return nil
	}
	y, m, d := now.UTC().Date()
	nextMidnight := time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
	return ErrOnCooldown{Action: action, Remaining: nextMidnight.Sub(now)}
}

// CheckNextClaim allows the action once now reaches nextClaim.
func (g *Gate) CheckNextClaim(action string, nextClaim, now time.Time) error {
	if g.config.DevMode || nextClaim.IsZero() || !now.Before(nextClaim) {
		return nil
	}
	return ErrOnCooldown{Action: action, Remaining: nextClaim.Sub(now)}
}

// NextClaimAt returns when action becomes available again after use at now.
func (g *Gate) NextClaimAt(action string, now time.Time) time.Time {
	return now.Add(g.config.Interval(action))
}
