package cooldown

import "time"

// Config tunes the gate. Interval actions missing from Intervals, or set to
// a non-positive duration, wait DefaultCooldownDuration.
type Config struct {
	// DevMode lets every action through, for local play-testing
	DevMode bool

	// Intervals is keyed by action name, e.g. ActionSupply
	Intervals map[string]time.Duration
}

// Interval returns how long action stays locked after use
func (c Config) Interval(action string) time.Duration {
	if d := c.Intervals[action]; d > 0 {
		return d
	}
	return DefaultCooldownDuration
}
