package drop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/gamedata"
	"github.com/hunter-yen/hunter-server/internal/utils"
)

func intPtr(v int) *int { return &v }

func defaultTables(t *testing.T) (map[int]*domain.DropRule, []domain.DropPool, map[string]int) {
	t.Helper()
	content, err := gamedata.Default()
	require.NoError(t, err)

	rules := make(map[int]*domain.DropRule)
	for i := range content.Catalog.DropRules {
		r := content.Catalog.DropRules[i]
		rules[r.Difficulty] = &r
	}
	rarity := make(map[string]int)
	for _, it := range content.Catalog.Items {
		rarity[it.ID] = it.Rarity
	}
	return rules, content.Catalog.DropPools, rarity
}

func TestResolve_ScriptedDraws(t *testing.T) {
	rules, pools, _ := defaultTables(t)

	// count 3, floor silver_piece, roll 10 -> r2 pool 0 item 1, roll 96 -> miss
	rng := utils.NewScriptedRNG(0, 0, 9, 0, 1, 95)
	drops := NewResolver(rng).Resolve(rules[3], pools)

	assert.Equal(t, []string{"silver_piece", "slime_gel_thick"}, drops)
}

func TestResolve_GuaranteedRarityFloor(t *testing.T) {
	rules, pools, rarity := defaultTables(t)
	resolver := NewResolver(utils.NewRNG(42))

	for difficulty := 2; difficulty <= 5; difficulty++ {
		rule := rules[difficulty]
		for i := 0; i < 200; i++ {
			drops := resolver.Resolve(rule, pools)
			require.NotEmpty(t, drops)
			assert.Equal(t, *rule.GuaranteedRarity, rarity[drops[0]], "difficulty %d", difficulty)
			assert.LessOrEqual(t, len(drops), rule.MaxCount)
		}
	}
}

func TestResolve_FullWeightTableHitsCountRange(t *testing.T) {
	rules, pools, rarity := defaultTables(t)
	resolver := NewResolver(utils.NewRNG(7))
	rule := rules[5]

	for i := 0; i < 500; i++ {
		drops := resolver.Resolve(rule, pools)
		assert.GreaterOrEqual(t, len(drops), 3)
		assert.LessOrEqual(t, len(drops), 5)

		floor := 0
		for _, id := range drops {
			if rarity[id] == 5 {
				floor++
			}
		}
		assert.GreaterOrEqual(t, floor, 1)
	}
}

func TestResolve_MissConsumesSlot(t *testing.T) {
	rule := &domain.DropRule{
		Difficulty:    1,
		MinCount:      2,
		MaxCount:      2,
		RarityChances: []domain.RarityChance{{Rarity: 1, Weight: 10}},
	}
	pools := []domain.DropPool{{Rarity: 1, ItemIDs: []string{"a"}}}

	// roll 100 misses, roll 5 hits
	drops := NewResolver(utils.NewScriptedRNG(99, 4, 0, 0)).Resolve(rule, pools)

	assert.Equal(t, []string{"a"}, drops)
}

func TestResolve_EmptyPoolYieldsNothing(t *testing.T) {
	rule := &domain.DropRule{
		MinCount:         2,
		MaxCount:         2,
		RarityChances:    []domain.RarityChance{{Rarity: 6, Weight: 100}},
		GuaranteedRarity: intPtr(6),
	}

	drops := NewResolver(utils.NewRNG(1)).Resolve(rule, []domain.DropPool{{Rarity: 1, ItemIDs: []string{"a"}}})

	assert.Empty(t, drops)
}

func TestResolve_WeightsWalkedInTableOrder(t *testing.T) {
	rule := &domain.DropRule{
		MinCount: 1,
		MaxCount: 1,
		RarityChances: []domain.RarityChance{
			{Rarity: 3, Weight: 30},
			{Rarity: 1, Weight: 70},
		},
	}
	pools := []domain.DropPool{
		{Rarity: 1, ItemIDs: []string{"common"}},
		{Rarity: 3, ItemIDs: []string{"rare"}},
	}

	tests := []struct {
		name string
		roll int
		want string
	}{
		{"lower bound", 0, "rare"},
		{"boundary inclusive", 29, "rare"},
		{"after boundary", 30, "common"},
		{"top", 99, "common"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drops := NewResolver(utils.NewScriptedRNG(tt.roll, 0, 0)).Resolve(rule, pools)
			assert.Equal(t, []string{tt.want}, drops)
		})
	}
}
