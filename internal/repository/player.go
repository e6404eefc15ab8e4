package repository

import (
	"context"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// Player defines persistence for player aggregates
type Player interface {
	GetPlayer(ctx context.Context, userID string) (*domain.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)

	// CreatePlayer inserts a new player; duplicate usernames return domain.ErrUsernameTaken
	CreatePlayer(ctx context.Context, player *domain.Player) error

	// UpdatePlayer persists player when the stored version still equals player.Version,
	// then increments player.Version. A stale version returns domain.ErrVersionConflict.
	UpdatePlayer(ctx context.Context, player *domain.Player) error

	// Leaderboard returns the top players by score, ties broken by username
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// PlayerRank returns the 1-based rank of userID under the leaderboard ordering
	PlayerRank(ctx context.Context, userID string) (int, error)

	// BeginTx starts a transaction for the item-use path
	BeginTx(ctx context.Context) (PlayerTx, error)

	Ping(ctx context.Context) error
}
