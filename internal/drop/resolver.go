package drop

import (
	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

// Roll bounds for one weighted slot
const (
	RollMin = 1
	RollMax = 100
)

// Resolver turns a drop rule and its pools into item IDs. It performs no I/O.
type Resolver struct {
	rng utils.RNG
}

// NewResolver creates a resolver drawing from rng
func NewResolver(rng utils.RNG) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve draws between rule.MinCount and rule.MaxCount slots.
// A guaranteed rarity fills the first slot from the union of its pools.
// Every other slot rolls 1..100 against cumulative weights in table order;
// a roll above the last bound or a pick from an empty pool yields nothing
// and still consumes the slot.
func (r *Resolver) Resolve(rule *domain.DropRule, pools []domain.DropPool) []string {
	byRarity := make(map[int][]domain.DropPool)
	for _, p := range pools {
		byRarity[p.Rarity] = append(byRarity[p.Rarity], p)
	}

	remaining := utils.RandomInt(r.rng, rule.MinCount, rule.MaxCount)
	drops := make([]string, 0, remaining)

	if rule.GuaranteedRarity != nil && remaining > 0 {
		var union []string
		for _, p := range byRarity[*rule.GuaranteedRarity] {
			union = append(union, p.ItemIDs...)
		}
		if id, ok := utils.Pick(r.rng, union); ok {
			drops = append(drops, id)
		}
		remaining--
	}

	for ; remaining > 0; remaining-- {
		rarity, ok := r.rollRarity(rule.RarityChances)
		if !ok {
			continue
		}
		pool, ok := utils.Pick(r.rng, byRarity[rarity])
		if !ok {
			continue
		}
		if id, ok := utils.Pick(r.rng, pool.ItemIDs); ok {
			drops = append(drops, id)
		}
	}
	return drops
}

func (r *Resolver) rollRarity(chances []domain.RarityChance) (int, bool) {
	roll := utils.RandomInt(r.rng, RollMin, RollMax)
	acc := 0
	for _, c := range chances {
		acc += c.Weight
		if acc >= roll {
			return c.Rarity, true
		}
	}
	return 0, false
}
