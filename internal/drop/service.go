package drop

import (
	"context"
	"fmt"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/player"
	"github.com/hunter-yen/hunter-server/internal/repository"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// NameLookup resolves item IDs to display names
type NameLookup interface {
	DisplayName(ctx context.Context, itemID string) string
}

// ClaimResult is the outcome of a drop claim
type ClaimResult struct {
	ItemIDs  []string              `json:"itemIds"`
	Drops    []string              `json:"drops"`
	Backpack []domain.BackpackItem `json:"backpackItems"`
}

// Service rolls drop tables and grants their results
type Service interface {
	Roll(ctx context.Context, difficulty int) ([]string, error)
	Claim(ctx context.Context, userID string, difficulty int) (*ClaimResult, error)
}

type service struct {
	rules    repository.Drop
	updater  *player.Updater
	names    NameLookup
	resolver *Resolver
	bus      event.Bus
}

// NewService creates a drop service
func NewService(rules repository.Drop, updater *player.Updater, names NameLookup, rng utils.RNG, bus event.Bus) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{
		rules:    rules,
		updater:  updater,
		names:    names,
		resolver: NewResolver(rng),
		bus:      bus,
	}
}

// Roll resolves the drop table for difficulty without granting anything
func (s *service) Roll(ctx context.Context, difficulty int) ([]string, error) {
	if difficulty < domain.MinDifficulty || difficulty > domain.MaxDifficulty {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDifficulty, difficulty)
	}

	rule, err := s.rules.GetDropRule(ctx, difficulty)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadRule, err)
	}
	pools, err := s.rules.GetDropPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadPools, err)
	}

	drops := s.resolver.Resolve(rule, pools)
	logger.FromContext(ctx).Debug(LogMsgDropsResolved, "difficulty", difficulty, "count", len(drops))
	return drops, nil
}

// Claim rolls difficulty and adds the drops to the player's backpack
func (s *service) Claim(ctx context.Context, userID string, difficulty int) (*ClaimResult, error) {
	drops, err := s.Roll(ctx, difficulty)
	if err != nil {
		return nil, err
	}

	p, err := s.updater.Update(ctx, userID, func(p *domain.Player) error {
		p.Backpack = utils.AddItemsToBackpack(p.Backpack, utils.DropsToQuantities(drops))
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, len(drops))
	for i, id := range drops {
		names[i] = s.names.DisplayName(ctx, id)
	}

	log := logger.FromContext(ctx)
	log.Info(LogMsgDropsClaimed, "user_id", userID, "difficulty", difficulty, "drops", drops)
	if err := s.bus.Publish(ctx, event.NewDropsResolvedEvent(userID, SourceClaim, difficulty, drops)); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}

	return &ClaimResult{ItemIDs: drops, Drops: names, Backpack: p.Backpack}, nil
}
