package itemuse

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

type rewardRange struct {
	ItemID string
	Min    int
	Max    int
}

// spawnEffect grants a random quantity of each reward; zero rolls grant nothing
type spawnEffect struct {
	rewards []rewardRange
}

func (e spawnEffect) Apply(_ context.Context, uc *UseContext, p *domain.Player, _ *domain.Item) ([]domain.AppliedEffect, error) {
	var applied []domain.AppliedEffect
	for _, r := range e.rewards {
		qty := utils.RandomInt(uc.RNG, r.Min, r.Max)
		if qty <= 0 {
			continue
		}
		var err error
		if p.Backpack, err = utils.AddToBackpack(p.Backpack, r.ItemID, qty); err != nil {
			return nil, err
		}
		applied = append(applied, domain.AppliedEffect{Type: domain.EffectGrantItem, ItemID: r.ItemID, Quantity: qty})
	}
	return applied, nil
}

// buffEffect upserts a named buff expiring ttl after the use
type buffEffect struct {
	name string
	ttl  time.Duration
	data map[string]any
}

func (e buffEffect) Apply(_ context.Context, uc *UseContext, p *domain.Player, _ *domain.Item) ([]domain.AppliedEffect, error) {
	p.UpsertBuff(domain.Buff{
		Name:      e.name,
		ExpiresAt: uc.Now.Add(e.ttl),
		Data:      maps.Clone(e.data),
	})
	return []domain.AppliedEffect{{Type: domain.EffectBuff, Buff: e.name, Minutes: int(e.ttl.Minutes())}}, nil
}

// extendEffect pushes back the deadline of every timed in-progress mission
type extendEffect struct {
	by time.Duration
}

func (e extendEffect) Apply(_ context.Context, _ *UseContext, p *domain.Player, _ *domain.Item) ([]domain.AppliedEffect, error) {
	extended := 0
	for i := range p.Missions {
		m := &p.Missions[i]
		if m.State != domain.MissionInProgress || m.ExpiresAt == nil {
			continue
		}
		next := m.ExpiresAt.Add(e.by)
		m.ExpiresAt = &next
		extended++
	}
	return []domain.AppliedEffect{{Type: domain.EffectExtendMissions, Minutes: int(e.by.Minutes()), Missions: extended}}, nil
}

func refreshMissions(ctx context.Context, uc *UseContext, p *domain.Player, _ *domain.Item) ([]domain.AppliedEffect, error) {
	if uc.Missions == nil {
		return nil, fmt.Errorf("%w: mission refresh unavailable", domain.ErrItemFuncNotRegistered)
	}
	retired, err := uc.Missions.RefreshPlayer(ctx, p)
	if err != nil {
		return nil, err
	}
	uc.Retired = append(uc.Retired, retired...)
	return []domain.AppliedEffect{{Type: domain.EffectRefreshMissions, Missions: len(p.Missions)}}, nil
}
