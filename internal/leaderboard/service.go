// Package leaderboard ranks players by score.
package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/logger"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100

	LogMsgLeaderboardRetrieved      = "Leaderboard retrieved"
	ErrContextFailedToGetBoard      = "failed to get leaderboard"
	ErrContextFailedToGetPlayerRank = "failed to get player rank"
)

// Board is the ranked top list plus the caller's own rank when requested
type Board struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
	Me      *domain.LeaderboardEntry  `json:"me,omitempty"`
}

// Service reads the leaderboard
type Service interface {
	Top(ctx context.Context, limit int, userID string) (*Board, error)
}

type service struct {
	repo repository.Player
}

// NewService creates a leaderboard service
func NewService(repo repository.Player) Service {
	return &service{repo: repo}
}

// Top returns up to limit entries ordered by score then username.
// A non-empty userID adds that player's rank even when outside the top list.
func (s *service) Top(ctx context.Context, limit int, userID string) (*Board, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	entries, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBoard, err)
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	board := &Board{Entries: entries}

	if userID != "" {
		me, err := s.rankOf(ctx, userID, entries)
		if err != nil {
			return nil, err
		}
		board.Me = me
	}

	logger.FromContext(ctx).Debug(LogMsgLeaderboardRetrieved, "count", len(entries), "user_id", userID)
	return board, nil
}

func (s *service) rankOf(ctx context.Context, userID string, entries []domain.LeaderboardEntry) (*domain.LeaderboardEntry, error) {
	for i := range entries {
		if entries[i].UserID == userID {
			e := entries[i]
			return &e, nil
		}
	}

	p, err := s.repo.GetPlayer(ctx, userID)
	if err != nil {
		return nil, err
	}
	rank, err := s.repo.PlayerRank(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetPlayerRank, err)
	}
	return &domain.LeaderboardEntry{Rank: rank, UserID: p.ID, Username: p.Username, Score: p.Score}, nil
}
