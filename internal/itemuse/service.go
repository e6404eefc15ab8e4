package itemuse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/repository"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// ItemLookup loads item definitions
type ItemLookup interface {
	Get(ctx context.Context, itemID string) (*domain.Item, error)
}

// MissionRefresher refreshes a loaded player's missions inside a caller-owned
// transaction and retires generated tasks after it commits
type MissionRefresher interface {
	RefreshPlayer(ctx context.Context, p *domain.Player) ([]string, error)
	RetireTasks(ctx context.Context, taskIDs []string)
}

// UseResult is returned after an applied use
type UseResult struct {
	Backpack []domain.BackpackItem  `json:"backpackItems"`
	Buffs    []domain.Buff          `json:"buff"`
	Effects  []domain.AppliedEffect `json:"effects"`
}

// Service applies item uses at most once per request ID
type Service interface {
	UseItem(ctx context.Context, userID, itemID, requestID string) (*UseResult, error)
}

type service struct {
	repo     repository.Player
	items    ItemLookup
	registry *Registry
	missions MissionRefresher
	rng      utils.RNG
	bus      event.Bus
	now      func() time.Time
}

// NewService creates an item-use service. missions may be nil when no
// registered effect refreshes missions.
func NewService(repo repository.Player, items ItemLookup, registry *Registry, missions MissionRefresher, rng utils.RNG, bus event.Bus) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{
		repo:     repo,
		items:    items,
		registry: registry,
		missions: missions,
		rng:      rng,
		bus:      bus,
		now:      time.Now,
	}
}

// UseItem consumes one unit of itemID and applies its effect. The duplicate
// check, stock decrement, effect and log write share one transaction holding
// the player's row lock, so a failure at any step leaves nothing behind.
func (s *service) UseItem(ctx context.Context, userID, itemID, requestID string) (*UseResult, error) {
	log := logger.FromContext(ctx)

	uc := &UseContext{Now: s.now(), RNG: s.rng, Missions: s.missions}
	var (
		result *UseResult
		item   *domain.Item
	)

	err := s.withTx(ctx, func(tx repository.PlayerTx) error {
		p, err := tx.GetPlayerForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if requestID != "" {
			dup, err := tx.HasItemUseLog(ctx, userID, itemID, requestID)
			if err != nil {
				return err
			}
			if dup {
				return domain.ErrDuplicateRequest
			}
		} else {
			log.Debug(LogMsgMissingItemUseLogKey, "user_id", userID, "item_id", itemID)
		}

		item, err = s.items.Get(ctx, itemID)
		if err != nil {
			return err
		}
		if item.IsKey() {
			return domain.ErrKeyUseNotAllowed
		}

		p.Backpack, err = utils.RemoveFromBackpack(p.Backpack, item.ID, 1)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientQuantity) {
				return fmt.Errorf("%w: %s", domain.ErrNoStock, item.ID)
			}
			return err
		}

		effect, ok := s.registry.Lookup(item.Func)
		if !ok {
			log.Warn(LogMsgNoEffectRegistered, "item_id", item.ID, "func", item.Func)
			return fmt.Errorf("%w: %q", domain.ErrItemFuncNotRegistered, item.Func)
		}
		applied, err := effect.Apply(ctx, uc, p, item)
		if err != nil {
			log.Warn(LogMsgEffectFailed, "item_id", item.ID, "func", item.Func, "error", err)
			return err
		}

		if err := tx.UpdatePlayer(ctx, p); err != nil {
			return err
		}

		if requestID != "" {
			inserted, err := tx.InsertItemUseLog(ctx, domain.ItemUseLog{
				UserID:    userID,
				ItemID:    itemID,
				RequestID: requestID,
				CreatedAt: uc.Now,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", ErrContextFailedToLogUse, err)
			}
			if !inserted {
				return domain.ErrDuplicateRequest
			}
		}

		if applied == nil {
			applied = []domain.AppliedEffect{}
		}
		result = &UseResult{
			Backpack: p.Backpack,
			Buffs:    p.ActiveBuffs(uc.Now),
			Effects:  applied,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRequest) {
			log.Info(LogMsgDuplicateRequest, "user_id", userID, "item_id", itemID, "request_id", requestID)
		}
		return nil, err
	}

	if len(uc.Retired) > 0 && s.missions != nil {
		s.missions.RetireTasks(ctx, uc.Retired)
	}

	log.Info(LogMsgItemUsed, "user_id", userID, "item_id", itemID, "func", item.Func, "effects", len(result.Effects))
	if err := s.bus.Publish(ctx, event.NewItemUsedEvent(userID, itemID, item.Func, requestID, len(result.Effects))); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}
	return result, nil
}

// withTx executes operation within a player transaction, committing on
// success and rolling back otherwise
func (s *service) withTx(ctx context.Context, operation func(tx repository.PlayerTx) error) error {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error(LogMsgFailedToBeginTx, "error", err)
		return fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := operation(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(LogMsgFailedToCommitTx, "error", err)
		return fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return nil
}
