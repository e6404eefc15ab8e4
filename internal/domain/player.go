package domain

import "time"

// Player is the aggregate owned by the mission, item and event services.
// Every mutation goes through a version-checked update.
type Player struct {
	ID        string         `json:"userId"`
	Username  string         `json:"username"`
	Score     int            `json:"score"`
	Version   int64          `json:"-"`
	Backpack  []BackpackItem `json:"backpackItems"`
	Missions  []Mission      `json:"missions"`
	Buffs     []Buff         `json:"buff"`
	Cooldowns Cooldowns      `json:"cooldowns"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BackpackItem is one stack in the backpack. Quantity is always >= 1.
type BackpackItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ItemQuantity pairs an item with an amount in rewards and costs.
type ItemQuantity struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Cooldowns holds per-feature gate timestamps.
// Daily gates store UTC calendar dates as YYYY-MM-DD.
type Cooldowns struct {
	LastStonePileDate string               `json:"lastStonePileTriggeredDate,omitempty"`
	LastTradeDate     string               `json:"lastTradeDate,omitempty"`
	LastBlessDate     string               `json:"lastBlessDate,omitempty"`
	SupplyNextClaim   map[string]time.Time `json:"supplyNextClaim,omitempty"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.Backpack = append([]BackpackItem(nil), p.Backpack...)
	c.Missions = make([]Mission, len(p.Missions))
	for i, m := range p.Missions {
		c.Missions[i] = m.Clone()
	}
	c.Buffs = make([]Buff, len(p.Buffs))
	for i, b := range p.Buffs {
		c.Buffs[i] = b.Clone()
	}
	if p.Cooldowns.SupplyNextClaim != nil {
		c.Cooldowns.SupplyNextClaim = make(map[string]time.Time, len(p.Cooldowns.SupplyNextClaim))
		for k, v := range p.Cooldowns.SupplyNextClaim {
			c.Cooldowns.SupplyNextClaim[k] = v
		}
	}
	return &c
}

// FindMission returns the index of the mission for taskID, or -1.
func (p *Player) FindMission(taskID string) int {
	for i := range p.Missions {
		if p.Missions[i].TaskID == taskID {
			return i
		}
	}
	return -1
}

// HoldsTask reports whether any mission slot references taskID.
func (p *Player) HoldsTask(taskID string) bool {
	return p.FindMission(taskID) >= 0
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}
