// Package gamedata loads the game content document: the reference catalog,
// event tables and minigame settings.
package gamedata

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

//go:embed content/game.json
var defaultContent []byte

// Content is the root of the game content document
type Content struct {
	Version int          `json:"version"`
	Catalog Catalog      `json:"catalog"`
	Events  Events       `json:"events"`
	Wordle  WordleConfig `json:"wordle"`
}

// Catalog is the reference data seeded into storage
type Catalog struct {
	Items     []domain.Item          `json:"items"`
	Tasks     []domain.Task          `json:"tasks"`
	DropRules []domain.DropRule      `json:"dropRules"`
	DropPools []domain.DropPool      `json:"dropPools"`
	Stations  []domain.SupplyStation `json:"stations"`
}

// Seeder writes a catalog into a storage backend
type Seeder interface {
	SeedCatalog(ctx context.Context, c Catalog) error
}

// Events holds the tables of every event handler
type Events struct {
	Chest     ChestConfig     `json:"chest"`
	Merchant  ExchangeConfig  `json:"merchant"`
	Tree      ExchangeConfig  `json:"tree"`
	StonePile StonePileConfig `json:"stonePile"`
	Slime     SlimeConfig     `json:"slime"`
	Supply    SupplyConfig    `json:"supply"`
}

// ChestTier maps a key type to the drop difficulty and score of its chest
type ChestTier struct {
	KeyType    string `json:"keyType"`
	KeyItemID  string `json:"keyItemId"`
	Difficulty int    `json:"difficulty"`
	Score      int    `json:"score"`
}

type ChestConfig struct {
	Tiers []ChestTier `json:"tiers"`
}

// Tier returns the tier for keyType
func (c ChestConfig) Tier(keyType string) (ChestTier, bool) {
	for _, t := range c.Tiers {
		if t.KeyType == keyType {
			return t, true
		}
	}
	return ChestTier{}, false
}

// ExchangeConfig is an option table of consume-for-reward trades
type ExchangeConfig struct {
	Options []domain.EventOption `json:"options"`
}

// Option returns the option with the given key
func (c ExchangeConfig) Option(key string) (domain.EventOption, bool) {
	for _, o := range c.Options {
		if o.Key == key {
			return o, true
		}
	}
	return domain.EventOption{}, false
}

type StonePileConfig struct {
	Rewards domain.EventReward `json:"rewards"`
}

// SlimeConfig bounds client-reported combat so the server decides the outcome
type SlimeConfig struct {
	MaxHitDamage      int    `json:"maxHitDamage"`
	MaxHits           int    `json:"maxHits"`
	ThickGelThreshold int    `json:"thickGelThreshold"`
	ScorePerDamage    int    `json:"scorePerDamage"`
	CommonReward      string `json:"commonReward"`
	ThickReward       string `json:"thickReward"`
}

type SupplyConfig struct {
	Difficulty int `json:"difficulty"`
}

type WordleConfig struct {
	Words       []string `json:"words"`
	MaxAttempts int      `json:"maxAttempts"`
}

// Default returns the embedded content
func Default() (*Content, error) {
	return Load(defaultContent)
}

// LoadFile reads content from path; an empty path yields the embedded content
func LoadFile(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game content %s: %w", path, err)
	}
	return Load(data)
}

// Load validates data against the content schema, decodes it and checks
// cross references between sections.
func Load(data []byte) (*Content, error) {
	if err := ValidateBytes(data); err != nil {
		return nil, err
	}
	var c Content
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode game content: %w", err)
	}
	if err := c.checkReferences(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Content) checkReferences() error {
	items := make(map[string]bool, len(c.Catalog.Items))
	for _, it := range c.Catalog.Items {
		if items[it.ID] {
			return fmt.Errorf("%w: duplicate item %s", ErrInvalidContent, it.ID)
		}
		items[it.ID] = true
	}
	known := func(where, id string) error {
		if !items[id] {
			return fmt.Errorf("%w: %s references unknown item %s", ErrInvalidContent, where, id)
		}
		return nil
	}

	for _, r := range c.Catalog.DropRules {
		if r.MinCount > r.MaxCount {
			return fmt.Errorf("%w: drop rule %d has minCount > maxCount", ErrInvalidContent, r.Difficulty)
		}
	}
	for _, p := range c.Catalog.DropPools {
		for _, id := range p.ItemIDs {
			if err := known(fmt.Sprintf("drop pool %d", p.ID), id); err != nil {
				return err
			}
		}
	}
	for _, t := range c.Catalog.Tasks {
		for _, r := range t.RewardItems {
			if err := known("task "+t.ID, r.ItemID); err != nil {
				return err
			}
		}
	}
	for _, t := range c.Events.Chest.Tiers {
		if err := known("chest tier "+t.KeyType, t.KeyItemID); err != nil {
			return err
		}
	}
	for _, table := range []ExchangeConfig{c.Events.Merchant, c.Events.Tree} {
		for _, o := range table.Options {
			for _, q := range append(append([]domain.ItemQuantity(nil), o.Consume...), o.Rewards.Items...) {
				if err := known("option "+o.Key, q.ItemID); err != nil {
					return err
				}
			}
		}
	}
	for _, q := range c.Events.StonePile.Rewards.Items {
		if err := known("stone pile", q.ItemID); err != nil {
			return err
		}
	}
	if err := known("slime", c.Events.Slime.CommonReward); err != nil {
		return err
	}
	return known("slime", c.Events.Slime.ThickReward)
}
