package encounter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hunter-yen/hunter-server/internal/cooldown"
	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/drop"
	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/player"
	"github.com/hunter-yen/hunter-server/internal/repository"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// Service resolves map events against a player's backpack and score
type Service interface {
	OpenChest(ctx context.Context, userID, keyType string) (*domain.EventOutcome, error)
	Trade(ctx context.Context, userID, optionKey string) (*domain.EventOutcome, error)
	Bless(ctx context.Context, userID, optionKey string) (*domain.EventOutcome, error)
	AttackSlime(ctx context.Context, userID string, hits []int) (*domain.EventOutcome, error)
	TriggerStonePile(ctx context.Context, userID string) (*domain.EventOutcome, error)
	ClaimSupply(ctx context.Context, userID, stationID string) (*domain.EventOutcome, error)
	ListStations(ctx context.Context) ([]domain.SupplyStation, error)
	Options(kind string) ([]domain.EventOption, error)
}

type service struct {
	updater  *player.Updater
	drops    repository.Drop
	stations repository.SupplyStation
	names    drop.NameLookup
	resolver *drop.Resolver
	gate     *cooldown.Gate
	events   gamedata.Events
	bus      event.Bus
	now      func() time.Time
}

// NewService creates an encounter service
func NewService(
	updater *player.Updater,
	catalog repository.Catalog,
	names drop.NameLookup,
	gate *cooldown.Gate,
	events gamedata.Events,
	rng utils.RNG,
	bus event.Bus,
) Service {
	if bus == nil {
		bus = event.NopBus{}
	}
	return &service{
		updater:  updater,
		drops:    catalog,
		stations: catalog,
		names:    names,
		resolver: drop.NewResolver(rng),
		gate:     gate,
		events:   events,
		bus:      bus,
		now:      time.Now,
	}
}

// rejection turns an expected refusal into a soft outcome
type rejection struct {
	msg string
	err error
}

func (r *rejection) Error() string { return r.msg + ": " + r.err.Error() }
func (r *rejection) Unwrap() error { return r.err }

func reject(msg string, err error) error {
	return &rejection{msg: msg, err: err}
}

// run applies fn as one optimistic update. Cooldown hits and missing items
// become success:false outcomes; everything else is returned as an error.
func (s *service) run(ctx context.Context, userID, encounter string, fn func(p *domain.Player, out *domain.EventOutcome) error) (*domain.EventOutcome, error) {
	log := logger.FromContext(ctx)

	var out *domain.EventOutcome
	_, err := s.updater.Update(ctx, userID, func(p *domain.Player) error {
		out = &domain.EventOutcome{Success: true}
		return fn(p, out)
	})

	var rej *rejection
	switch {
	case err == nil:
	case errors.As(err, &rej):
		log.Info(LogMsgEncounterRejected, "user_id", userID, "encounter", encounter, "reason", rej.err)
		out = &domain.EventOutcome{Success: false, Message: rej.msg}
	default:
		return nil, err
	}

	if out.Success {
		log.Info(LogMsgEncounterResolved, "user_id", userID, "encounter", encounter, "score", out.Score, "drops", len(out.Drops))
	}
	if err := s.bus.Publish(ctx, event.NewEncounterEvent(userID, encounter, out.Success, out.Score)); err != nil {
		log.Warn(LogMsgFailedToPublish, "error", err)
	}
	return out, nil
}

func (s *service) table(ctx context.Context, difficulty int) (*domain.DropRule, []domain.DropPool, error) {
	rule, err := s.drops.GetDropRule(ctx, difficulty)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadDropTable, err)
	}
	pools, err := s.drops.GetDropPools(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadDropTable, err)
	}
	return rule, pools, nil
}

func (s *service) displayNames(ctx context.Context, ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = s.names.DisplayName(ctx, id)
	}
	return names
}

// grant adds rewards and score to p and records them on out
func grant(p *domain.Player, out *domain.EventOutcome, reward domain.EventReward) {
	p.Backpack = utils.AddItemsToBackpack(p.Backpack, reward.Items)
	p.Score += reward.Score
	out.Score += reward.Score
	out.Rewards = append(out.Rewards, reward.Items...)
}

// OpenChest consumes a key of the tier (or a live treasure map for its tier)
// and rolls that tier's drop table
func (s *service) OpenChest(ctx context.Context, userID, keyType string) (*domain.EventOutcome, error) {
	tier, ok := s.events.Chest.Tier(keyType)
	if !ok {
		return nil, fmt.Errorf("%w: chest tier %q", domain.ErrOptionNotFound, keyType)
	}
	rule, pools, err := s.table(ctx, tier.Difficulty)
	if err != nil {
		return nil, err
	}

	var dropIDs []string
	out, err := s.run(ctx, userID, EncounterChest, func(p *domain.Player, out *domain.EventOutcome) error {
		if !consumeTreasureMap(p, tier.KeyType, s.now()) {
			var err error
			if p.Backpack, err = utils.RemoveFromBackpack(p.Backpack, tier.KeyItemID, 1); err != nil {
				return reject(MsgNoKey, err)
			}
		}

		dropIDs = s.resolver.Resolve(rule, pools)
		grant(p, out, domain.EventReward{Score: tier.Score, Items: utils.DropsToQuantities(dropIDs)})
		out.Message = MsgChestOpened
		return nil
	})
	if err != nil || !out.Success {
		return out, err
	}

	out.Drops = s.displayNames(ctx, dropIDs)
	s.publishDrops(ctx, userID, drop.SourceChest, tier.Difficulty, dropIDs)
	return out, nil
}

// consumeTreasureMap removes a live treasure map buff pointing at tier
func consumeTreasureMap(p *domain.Player, tier string, now time.Time) bool {
	for i, b := range p.Buffs {
		if b.Name != domain.BuffTreasureMap || !b.Active(now) {
			continue
		}
		if t, _ := b.Data[domain.BuffDataChestTier].(string); t != tier {
			continue
		}
		p.Buffs = append(p.Buffs[:i], p.Buffs[i+1:]...)
		return true
	}
	return false
}

// Trade exchanges items with the merchant once per UTC day
func (s *service) Trade(ctx context.Context, userID, optionKey string) (*domain.EventOutcome, error) {
	opt, ok := s.events.Merchant.Option(optionKey)
	if !ok {
		return nil, fmt.Errorf("%w: merchant option %q", domain.ErrOptionNotFound, optionKey)
	}
	return s.run(ctx, userID, EncounterTrade, func(p *domain.Player, out *domain.EventOutcome) error {
		now := s.now()
		if err := s.gate.CheckDaily(cooldown.ActionTrade, p.Cooldowns.LastTradeDate, now); err != nil {
			return reject(MsgTradeDoneToday, err)
		}
		if err := exchange(p, out, opt); err != nil {
			return err
		}
		p.Cooldowns.LastTradeDate = cooldown.DayKey(now)
		out.Message = MsgTradeDone
		return nil
	})
}

// Bless offers items to the ancient tree once per UTC day
func (s *service) Bless(ctx context.Context, userID, optionKey string) (*domain.EventOutcome, error) {
	opt, ok := s.events.Tree.Option(optionKey)
	if !ok {
		return nil, fmt.Errorf("%w: tree option %q", domain.ErrOptionNotFound, optionKey)
	}
	return s.run(ctx, userID, EncounterBless, func(p *domain.Player, out *domain.EventOutcome) error {
		now := s.now()
		if err := s.gate.CheckDaily(cooldown.ActionBless, p.Cooldowns.LastBlessDate, now); err != nil {
			return reject(MsgBlessDoneToday, err)
		}
		if err := exchange(p, out, opt); err != nil {
			return err
		}
		p.Cooldowns.LastBlessDate = cooldown.DayKey(now)
		out.Message = MsgBlessDone
		return nil
	})
}

func exchange(p *domain.Player, out *domain.EventOutcome, opt domain.EventOption) error {
	var err error
	if p.Backpack, err = utils.RemoveItemsFromBackpack(p.Backpack, opt.Consume); err != nil {
		return reject(MsgNotEnoughItems, err)
	}
	grant(p, out, opt.Rewards)
	return nil
}

// AttackSlime settles a fight from the reported hits. Each hit is clamped to
// the configured maximum and only the first MaxHits count, so the client
// cannot claim more damage than a fight allows.
func (s *service) AttackSlime(ctx context.Context, userID string, hits []int) (*domain.EventOutcome, error) {
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: at least one hit is required", domain.ErrInvalidInput)
	}
	cfg := s.events.Slime

	base := 0
	for i, h := range hits {
		if i >= cfg.MaxHits {
			break
		}
		base += utils.Clamp(h, 0, cfg.MaxHitDamage)
	}

	return s.run(ctx, userID, EncounterSlime, func(p *domain.Player, out *domain.EventOutcome) error {
		total := base
		if torch, ok := p.ActiveBuff(domain.BuffTorch, s.now()); ok {
			total *= max(1, torch.IntData(domain.BuffDataDamageMultiplier, 1))
		}

		reward := cfg.CommonReward
		if total > cfg.ThickGelThreshold {
			reward = cfg.ThickReward
		}
		grant(p, out, domain.EventReward{
			Score: total * cfg.ScorePerDamage,
			Items: []domain.ItemQuantity{{ItemID: reward, Quantity: 1}},
		})
		out.Message = fmt.Sprintf("%s (%d damage)", MsgSlimeDefeated, total)
		return nil
	})
}

// TriggerStonePile grants the stone pile reward once per UTC calendar day
func (s *service) TriggerStonePile(ctx context.Context, userID string) (*domain.EventOutcome, error) {
	return s.run(ctx, userID, EncounterStonePile, func(p *domain.Player, out *domain.EventOutcome) error {
		now := s.now()
		if err := s.gate.CheckDaily(cooldown.ActionStonePile, p.Cooldowns.LastStonePileDate, now); err != nil {
			return reject(MsgStonePileDoneToday, err)
		}
		grant(p, out, s.events.StonePile.Rewards)
		p.Cooldowns.LastStonePileDate = cooldown.DayKey(now)
		out.Message = MsgStonePileFound
		return nil
	})
}

// ClaimSupply rolls the supply table at a station whose restock time has
// passed. A live ancient branch buff adds boosted extra rolls.
func (s *service) ClaimSupply(ctx context.Context, userID, stationID string) (*domain.EventOutcome, error) {
	if _, err := s.stations.GetSupplyStation(ctx, stationID); err != nil {
		return nil, err
	}

	difficulty := s.events.Supply.Difficulty
	rule, pools, err := s.table(ctx, difficulty)
	if err != nil {
		return nil, err
	}

	var dropIDs []string
	var boosted *domain.DropRule
	out, err := s.run(ctx, userID, EncounterSupply, func(p *domain.Player, out *domain.EventOutcome) error {
		now := s.now()
		if err := s.gate.CheckNextClaim(cooldown.ActionSupply, p.Cooldowns.SupplyNextClaim[stationID], now); err != nil {
			return reject(MsgSupplyCooldown, err)
		}

		dropIDs = s.resolver.Resolve(rule, pools)
		if branch, ok := p.ActiveBuff(domain.BuffAncientBranch, now); ok {
			if boosted == nil {
				boostedDifficulty := min(
					difficulty+branch.IntData(domain.BuffDataRarityBoost, 1),
					branch.IntData(domain.BuffDataRarityCap, domain.MaxDifficulty),
				)
				var err error
				if boosted, err = s.drops.GetDropRule(ctx, boostedDifficulty); err != nil {
					return fmt.Errorf("%s: %w", ErrContextFailedToLoadDropTable, err)
				}
			}
			for i := 0; i < branch.IntData(domain.BuffDataExtraRoll, 1); i++ {
				dropIDs = append(dropIDs, s.resolver.Resolve(boosted, pools)...)
			}
		}

		grant(p, out, domain.EventReward{Items: utils.DropsToQuantities(dropIDs)})
		if p.Cooldowns.SupplyNextClaim == nil {
			p.Cooldowns.SupplyNextClaim = make(map[string]time.Time)
		}
		p.Cooldowns.SupplyNextClaim[stationID] = s.gate.NextClaimAt(cooldown.ActionSupply, now)
		out.Message = MsgSupplyClaimed
		return nil
	})
	if err != nil || !out.Success {
		return out, err
	}

	out.Drops = s.displayNames(ctx, dropIDs)
	s.publishDrops(ctx, userID, drop.SourceSupply, difficulty, dropIDs)
	return out, nil
}

// ListStations returns every supply station
func (s *service) ListStations(ctx context.Context) ([]domain.SupplyStation, error) {
	return s.stations.ListSupplyStations(ctx)
}

// Options returns the option table of an exchange event
func (s *service) Options(kind string) ([]domain.EventOption, error) {
	switch kind {
	case OptionsMerchant:
		return s.events.Merchant.Options, nil
	case OptionsTree:
		return s.events.Tree.Options, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, kind)
	}
}

func (s *service) publishDrops(ctx context.Context, userID, source string, difficulty int, ids []string) {
	if err := s.bus.Publish(ctx, event.NewDropsResolvedEvent(userID, source, difficulty, ids)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgFailedToPublish, "error", err)
	}
}
