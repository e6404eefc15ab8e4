package domain

// RarityChance is one weighted entry of a drop rule. Order is significant.
type RarityChance struct {
	Rarity int `json:"rarity"`
	Weight int `json:"weight"`
}

// DropRule describes how many items a difficulty yields and at which rarities.
type DropRule struct {
	Difficulty       int            `json:"difficulty"`
	MinCount         int            `json:"minCount"`
	MaxCount         int            `json:"maxCount"`
	RarityChances    []RarityChance `json:"rarityChances"`
	GuaranteedRarity *int           `json:"guaranteedRarity,omitempty"`
}

// DropPool is a rarity-tagged bucket of item IDs.
type DropPool struct {
	ID      int64    `json:"id"`
	Rarity  int      `json:"rarity"`
	ItemIDs []string `json:"itemIds"`
}

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)
