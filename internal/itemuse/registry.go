package itemuse

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// UseContext carries what an effect may read and report during one use
type UseContext struct {
	Now      time.Time
	RNG      utils.RNG
	Missions MissionRefresher

	// Retired collects generated task IDs to delete after commit
	Retired []string
}

// Effect applies one item function to a locked player. It must only mutate
// p; the surrounding transaction decides whether anything is persisted.
type Effect interface {
	Apply(ctx context.Context, uc *UseContext, p *domain.Player, item *domain.Item) ([]domain.AppliedEffect, error)
}

// EffectFunc adapts a function to the Effect interface
type EffectFunc func(ctx context.Context, uc *UseContext, p *domain.Player, item *domain.Item) ([]domain.AppliedEffect, error)

// Apply calls f
func (f EffectFunc) Apply(ctx context.Context, uc *UseContext, p *domain.Player, item *domain.Item) ([]domain.AppliedEffect, error) {
	return f(ctx, uc, p, item)
}

// Registry maps item function keys to effects
type Registry struct {
	mu      sync.RWMutex
	effects map[string]Effect
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{effects: make(map[string]Effect, defaultRegistryCapacity)}
}

// NewDefaultRegistry creates a registry with every built-in effect
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FuncSpawnSlimeSmall, spawnEffect{rewards: []rewardRange{
		{ItemID: domain.ItemCopperPiece, Min: 1, Max: 3},
		{ItemID: domain.ItemSilverPiece, Min: 0, Max: 2},
	}})
	r.Register(FuncSpawnSlimeBig, spawnEffect{rewards: []rewardRange{
		{ItemID: domain.ItemSilverPiece, Min: 1, Max: 3},
		{ItemID: domain.ItemGoldPiece, Min: 0, Max: 2},
	}})
	r.Register(FuncTreasureMapTrigger, buffEffect{
		name: domain.BuffTreasureMap,
		ttl:  TreasureMapBuffTTL,
		data: map[string]any{domain.BuffDataChestTier: "gold"},
	})
	r.Register(FuncTorchBuff, buffEffect{
		name: domain.BuffTorch,
		ttl:  TorchBuffTTL,
		data: map[string]any{domain.BuffDataDamageMultiplier: TorchDamageMultiplier},
	})
	r.Register(FuncAncientBranchBuff, buffEffect{
		name: domain.BuffAncientBranch,
		ttl:  AncientBranchBuffTTL,
		data: map[string]any{
			domain.BuffDataExtraRoll:   AncientBranchExtraRoll,
			domain.BuffDataRarityBoost: AncientBranchRarityBoost,
			domain.BuffDataRarityCap:   AncientBranchRarityCap,
		},
	})
	r.Register(FuncHourglassRefresh, EffectFunc(refreshMissions))
	r.Register(FuncHourglassExtend, extendEffect{by: HourglassExtendBy})
	return r
}

// Register adds or replaces the effect for fn
func (r *Registry) Register(fn string, e Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[fn] = e
}

// Lookup returns the effect registered for fn
func (r *Registry) Lookup(fn string) (Effect, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.effects[fn]
	return e, ok
}

// Funcs lists registered function keys in sorted order
func (r *Registry) Funcs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.effects))
	for fn := range r.effects {
		out = append(out, fn)
	}
	sort.Strings(out)
	return out
}
