package repository

import (
	"context"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PlayerTx is a transaction holding a row lock on one player.
// It backs the item-use path, which must be all-or-nothing.
type PlayerTx interface {
	Tx

	// GetPlayerForUpdate loads the player and locks it until the transaction ends
	GetPlayerForUpdate(ctx context.Context, userID string) (*domain.Player, error)

	// UpdatePlayer writes the player inside the transaction and bumps its version
	UpdatePlayer(ctx context.Context, player *domain.Player) error

	// HasItemUseLog reports whether (userID, itemID, requestID) was already applied
	HasItemUseLog(ctx context.Context, userID, itemID, requestID string) (bool, error)

	// InsertItemUseLog records the use; it returns false when the triple already exists
	InsertItemUseLog(ctx context.Context, log domain.ItemUseLog) (bool, error)
}
