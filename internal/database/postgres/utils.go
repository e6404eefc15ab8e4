package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// parseUserUUID parses a user ID string to uuid.UUID with consistent error message.
// Malformed IDs cannot name a stored player, so they read as not found.
func parseUserUUID(userID string) (uuid.UUID, error) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %s", domain.ErrPlayerNotFound, ErrMsgInvalidUserID, userID)
	}
	return u, nil
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// playerState is the JSONB-encoded part of a player row
type playerState struct {
	backpack  []byte
	missions  []byte
	buffs     []byte
	cooldowns []byte
}

func marshalPlayerState(p *domain.Player) (playerState, error) {
	var (
		s   playerState
		err error
	)
	backpack := p.Backpack
	if backpack == nil {
		backpack = []domain.BackpackItem{}
	}
	missions := p.Missions
	if missions == nil {
		missions = []domain.Mission{}
	}
	buffs := p.Buffs
	if buffs == nil {
		buffs = []domain.Buff{}
	}
	if s.backpack, err = json.Marshal(backpack); err != nil {
		return s, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPlayer, err)
	}
	if s.missions, err = json.Marshal(missions); err != nil {
		return s, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPlayer, err)
	}
	if s.buffs, err = json.Marshal(buffs); err != nil {
		return s, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPlayer, err)
	}
	if s.cooldowns, err = json.Marshal(p.Cooldowns); err != nil {
		return s, fmt.Errorf("%s: %w", ErrMsgFailedToMarshalPlayer, err)
	}
	return s, nil
}

// scanPlayer reads one row selected with playerColumns
func scanPlayer(row rowScanner) (*domain.Player, error) {
	var (
		p  domain.Player
		id uuid.UUID
		s  playerState
	)
	if err := row.Scan(&id, &p.Username, &p.Score, &p.Version, &s.backpack, &s.missions, &s.buffs, &s.cooldowns, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = id.String()
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{s.backpack, &p.Backpack},
		{s.missions, &p.Missions},
		{s.buffs, &p.Buffs},
		{s.cooldowns, &p.Cooldowns},
	} {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalPlayer, err)
		}
	}
	return &p, nil
}

// notFound maps pgx.ErrNoRows to sentinel, otherwise wraps err with context
func notFound(err error, sentinel error, key, context string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", sentinel, key)
	}
	return fmt.Errorf("%s: %w", context, err)
}
