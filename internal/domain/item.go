package domain

import "strings"

// ItemType classifies items.
type ItemType string

const (
	ItemTypeMaterial   ItemType = "material"
	ItemTypeConsumable ItemType = "consumable"
)

// Item is catalog reference data.
type Item struct {
	ID          string   `json:"itemId"`
	Name        string   `json:"itemName"`
	Description string   `json:"description,omitempty"`
	Func        string   `json:"itemFunc,omitempty"`
	Type        ItemType `json:"type"`
	Rarity      int      `json:"rarity"`
	ResultID    string   `json:"resultId,omitempty"`
}

// CraftCost is how many of a material one craft consumes
const CraftCost = 3

// Craftable reports whether the item combines into another item.
func (i *Item) Craftable() bool {
	return i.ResultID != "" && i.ResultID != i.ID
}

// Key markers in item names
const (
	keyMarker      = "鑰匙"
	fragmentMarker = "碎片"
	keyIDPrefix    = "key_"
)

// IsKey reports whether the item is a chest key rather than a key fragment.
func (i *Item) IsKey() bool {
	if strings.HasPrefix(i.ID, keyIDPrefix) {
		return true
	}
	return strings.Contains(i.Name, keyMarker) && !strings.Contains(i.Name, fragmentMarker)
}

// Well-known item IDs referenced by game logic
const (
	ItemKeyBronze      = "key_bronze"
	ItemKeySilver      = "key_silver"
	ItemKeyGold        = "key_gold"
	ItemCopperPiece    = "copper_piece"
	ItemSilverPiece    = "silver_piece"
	ItemGoldPiece      = "gold_piece"
	ItemSlimeGelCommon = "slime_gel_common"
	ItemSlimeGelThick  = "slime_gel_thick"
)
