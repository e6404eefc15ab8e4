package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlayerRepository implements repository.Player for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *PlayerRepository) GetPlayer(ctx context.Context, userID string) (*domain.Player, error) {
	return getPlayer(ctx, r.db, userID, false)
}

func (r *PlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE LOWER(username) = LOWER($1)`
	p, err := scanPlayer(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, notFound(err, domain.ErrPlayerNotFound, username, ErrMsgFailedToGetPlayer)
	}
	return p, nil
}

// CreatePlayer inserts the player at version 1 and fills ID and timestamps
func (r *PlayerRepository) CreatePlayer(ctx context.Context, player *domain.Player) error {
	state, err := marshalPlayerState(player)
	if err != nil {
		return err
	}

	var id any
	if player.ID != "" {
		u, err := parseUserUUID(player.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlayer, err)
		}
		id = u
	}

	query := `
		INSERT INTO players (user_id, username, score, version, backpack, missions, buffs, cooldowns)
		VALUES (COALESCE($1, gen_random_uuid()), $2, $3, 1, $4, $5, $6, $7)
		RETURNING ` + playerColumns
	p, err := scanPlayer(r.db.QueryRow(ctx, query, id, player.Username, player.Score,
		state.backpack, state.missions, state.buffs, state.cooldowns))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, player.Username)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlayer, err)
	}

	player.ID = p.ID
	player.Version = p.Version
	player.CreatedAt = p.CreatedAt
	player.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *PlayerRepository) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	return updatePlayer(ctx, r.db, player)
}

// Leaderboard orders players by score descending then username
func (r *PlayerRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id::text, username, score
		FROM players
		ORDER BY score DESC, username ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLeaderboard, err)
	}
	return entries, nil
}

// PlayerRank counts players ahead of userID under the leaderboard ordering
func (r *PlayerRepository) PlayerRank(ctx context.Context, userID string) (int, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return 0, err
	}
	query := `
		SELECT COUNT(*) + 1
		FROM players o, players me
		WHERE me.user_id = $1
		  AND (o.score > me.score OR (o.score = me.score AND o.username < me.username))
	`
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM players WHERE user_id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayerRank, err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, userID)
	}
	var rank int
	if err := r.db.QueryRow(ctx, query, id).Scan(&rank); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayerRank, err)
	}
	return rank, nil
}

// BeginTx starts a transaction for the item-use path
func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &playerTx{tx: tx}, nil
}

func getPlayer(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Player, error) {
	id, err := parseUserUUID(userID)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanPlayer(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, domain.ErrPlayerNotFound, userID, ErrMsgFailedToGetPlayer)
	}
	return p, nil
}

// updatePlayer writes the player when its version is current and bumps it
func updatePlayer(ctx context.Context, q querier, player *domain.Player) error {
	id, err := parseUserUUID(player.ID)
	if err != nil {
		return err
	}
	state, err := marshalPlayerState(player)
	if err != nil {
		return err
	}

	query := `
		UPDATE players
		SET score = $3, backpack = $4, missions = $5, buffs = $6, cooldowns = $7,
		    version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND version = $2
		RETURNING version, updated_at
	`
	err = q.QueryRow(ctx, query, id, player.Version, player.Score,
		state.backpack, state.missions, state.buffs, state.cooldowns).Scan(&player.Version, &player.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePlayer, err)
	}

	var current int64
	if err := q.QueryRow(ctx, `SELECT version FROM players WHERE user_id = $1`, id).Scan(&current); err != nil {
		return notFound(err, domain.ErrPlayerNotFound, player.ID, ErrMsgFailedToUpdatePlayer)
	}
	return fmt.Errorf("%w: player %s at version %d, expected %d",
		domain.ErrVersionConflict, player.ID, current, player.Version)
}

var _ repository.Player = (*PlayerRepository)(nil)
