package gamedata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedContent(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 1, c.Version)
	assert.Len(t, c.Catalog.DropRules, 5)
	assert.NotEmpty(t, c.Catalog.Items)
	assert.Equal(t, []string{"APPLE", "POWER", "TIGER", "HOUSE", "CHAIR"}, c.Wordle.Words)
	assert.Equal(t, 6, c.Wordle.MaxAttempts)

	rule := c.Catalog.DropRules[2]
	assert.Equal(t, 3, rule.Difficulty)
	require.NotNil(t, rule.GuaranteedRarity)
	assert.Equal(t, 3, *rule.GuaranteedRarity)
	assert.Nil(t, c.Catalog.DropRules[0].GuaranteedRarity)
}

func TestChestConfig_Tier(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		keyType    string
		difficulty int
		score      int
	}{
		{"bronze", 3, 15},
		{"silver", 4, 25},
		{"gold", 5, 40},
	}
	for _, tt := range tests {
		t.Run(tt.keyType, func(t *testing.T) {
			tier, ok := c.Events.Chest.Tier(tt.keyType)
			require.True(t, ok)
			assert.Equal(t, tt.difficulty, tier.Difficulty)
			assert.Equal(t, tt.score, tier.Score)
		})
	}

	_, ok := c.Events.Chest.Tier("platinum")
	assert.False(t, ok)
}

func TestExchangeConfig_Option(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	opt, ok := c.Events.Merchant.Option("copper_to_silver")
	require.True(t, ok)
	assert.Equal(t, "copper_piece", opt.Consume[0].ItemID)
	assert.Equal(t, 3, opt.Consume[0].Quantity)

	_, ok = c.Events.Tree.Option("missing")
	assert.False(t, ok)
}

func TestLoad_SchemaViolation(t *testing.T) {
	bad := strings.Replace(string(defaultContent), `"maxAttempts": 6`, `"maxAttempts": 0`, 1)

	_, err := Load([]byte(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContent)
	assert.Contains(t, err.Error(), "/wordle/maxAttempts")
}

func TestLoad_LowercaseWordRejected(t *testing.T) {
	bad := strings.Replace(string(defaultContent), `"APPLE"`, `"apple"`, 1)

	_, err := Load([]byte(bad))
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestLoad_UnknownItemReference(t *testing.T) {
	bad := strings.Replace(string(defaultContent), `"itemIds": ["slime_gel_common"]`, `"itemIds": ["no_such_item"]`, 1)

	_, err := Load([]byte(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidContent)
	assert.Contains(t, err.Error(), "no_such_item")
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load([]byte(`{"version":`))
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path uses embedded content", func(t *testing.T) {
		c, err := LoadFile("")
		require.NoError(t, err)
		assert.NotEmpty(t, c.Catalog.Tasks)
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.json")
		require.NoError(t, os.WriteFile(path, defaultContent, 0o600))
		c, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, c.Catalog.Stations, 4)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
