package crafting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/player"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// ItemLookup resolves catalog items
type ItemLookup interface {
	Get(ctx context.Context, itemID string) (*domain.Item, error)
}

// CraftResult is the outcome of one craft
type CraftResult struct {
	ItemID   string                `json:"itemId"`
	ResultID string                `json:"resultId"`
	Consumed int                   `json:"consumed"`
	Backpack []domain.BackpackItem `json:"backpackItems"`
}

// Service combines materials into their result items
type Service interface {
	// Craft consumes domain.CraftCost of itemID and grants one of its result item
	Craft(ctx context.Context, userID, itemID string) (*CraftResult, error)
}

type service struct {
	items   ItemLookup
	updater *player.Updater
	bus     event.Bus
}

// NewService creates a crafting service
func NewService(items ItemLookup, updater *player.Updater, bus event.Bus) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{items: items, updater: updater, bus: bus}
}

func (s *service) Craft(ctx context.Context, userID, itemID string) (*CraftResult, error) {
	log := logger.FromContext(ctx)

	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", domain.ErrInvalidInput)
	}

	material, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadItem, err)
	}
	if !material.Craftable() {
		log.Info(LogMsgCraftRejected, "user_id", userID, "item_id", itemID)
		return nil, fmt.Errorf("%w: %s", domain.ErrNotCraftable, itemID)
	}
	if _, err := s.items.Get(ctx, material.ResultID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: %s has no valid result", domain.ErrNotCraftable, itemID)
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadResult, err)
	}

	p, err := s.updater.Update(ctx, userID, func(p *domain.Player) error {
		backpack, err := utils.RemoveFromBackpack(p.Backpack, itemID, domain.CraftCost)
		if err != nil {
			return err
		}
		backpack, err = utils.AddToBackpack(backpack, material.ResultID, 1)
		if err != nil {
			return err
		}
		p.Backpack = backpack
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemCrafted, "user_id", userID, "item_id", itemID, "result_id", material.ResultID)
	if err := s.bus.Publish(ctx, event.NewItemCraftedEvent(userID, itemID, material.ResultID, domain.CraftCost)); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}

	return &CraftResult{
		ItemID:   itemID,
		ResultID: material.ResultID,
		Consumed: domain.CraftCost,
		Backpack: p.Backpack,
	}, nil
}
