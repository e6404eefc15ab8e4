package domain

import (
	"maps"
	"time"
)

// Buff is a named, time-limited modifier. At most one live entry per name.
type Buff struct {
	Name      string         `json:"name"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Data      map[string]any `json:"data,omitempty"`
}

// Buff names
const (
	BuffTreasureMap   = "treasure_map_once"
	BuffTorch         = "torch_buff"
	BuffAncientBranch = "ancient_branch"
)

// Buff payload keys
const (
	BuffDataDamageMultiplier = "damageMultiplier"
	BuffDataExtraRoll        = "extraRoll"
	BuffDataRarityBoost      = "rarityBoost"
	BuffDataRarityCap        = "rarityCap"
	BuffDataChestTier        = "chestTier"
)

// Clone deep-copies the buff payload map.
func (b Buff) Clone() Buff {
	c := b
	if b.Data != nil {
		c.Data = maps.Clone(b.Data)
	}
	return c
}

// Active reports whether the buff is live at now.
func (b Buff) Active(now time.Time) bool {
	return now.Before(b.ExpiresAt)
}

// IntData reads a numeric payload field, tolerating JSON float decoding.
func (b Buff) IntData(key string, fallback int) int {
	switch v := b.Data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// UpsertBuff replaces the buff with the same name or appends it.
func (p *Player) UpsertBuff(b Buff) {
	for i := range p.Buffs {
		if p.Buffs[i].Name == b.Name {
			p.Buffs[i] = b
			return
		}
	}
	p.Buffs = append(p.Buffs, b)
}

// ActiveBuff returns the live buff named name, if any.
func (p *Player) ActiveBuff(name string, now time.Time) (Buff, bool) {
	for _, b := range p.Buffs {
		if b.Name == name && b.Active(now) {
			return b, true
		}
	}
	return Buff{}, false
}

// ActiveBuffs filters out expired buffs.
func (p *Player) ActiveBuffs(now time.Time) []Buff {
	out := make([]Buff, 0, len(p.Buffs))
	for _, b := range p.Buffs {
		if b.Active(now) {
			out = append(out, b)
		}
	}
	return out
}
