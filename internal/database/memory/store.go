// Package memory is an in-process storage backend with the same contract as
// the PostgreSQL repositories. It serves tests and STORAGE=memory runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hunter-yen/hunter-server/internal/concurrency"
	"github.com/hunter-yen/hunter-server/internal/domain"
	"github.com/hunter-yen/hunter-server/internal/repository"
)

type useLogKey struct {
	userID, itemID, requestID string
}

// Store holds every collection in maps guarded by one RWMutex.
// Per-player locks serialize writers the way row locks do in PostgreSQL.
type Store struct {
	mu sync.RWMutex

	players     map[string]*domain.Player
	usernames   map[string]string
	useLogs     map[useLogKey]domain.ItemUseLog
	tasks       map[string]*domain.Task
	items       map[string]*domain.Item
	dropRules   map[int]*domain.DropRule
	dropPools   []domain.DropPool
	stations    map[string]*domain.SupplyStation
	stationList []string

	locks *concurrency.KeyedMutex
	now   func() time.Time
}

// New returns an empty store
func New() *Store {
	return &Store{
		players:   make(map[string]*domain.Player),
		usernames: make(map[string]string),
		useLogs:   make(map[useLogKey]domain.ItemUseLog),
		tasks:     make(map[string]*domain.Task),
		items:     make(map[string]*domain.Item),
		dropRules: make(map[int]*domain.DropRule),
		stations:  make(map[string]*domain.SupplyStation),
		locks:     concurrency.NewKeyedMutex(),
		now:       time.Now,
	}
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// GetPlayer returns a copy of the stored player
func (s *Store) GetPlayer(_ context.Context, userID string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, userID)
	}
	return p.Clone(), nil
}

// GetPlayerByUsername looks a player up by case-insensitive username
func (s *Store) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	s.mu.RLock()
	id, ok := s.usernames[strings.ToLower(username)]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, username)
	}
	return s.GetPlayer(ctx, id)
}

// CreatePlayer stores a new player at version 1
func (s *Store) CreatePlayer(_ context.Context, player *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(player.Username)
	if _, taken := s.usernames[key]; taken {
		return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, player.Username)
	}
	now := s.now().UTC()
	player.Version = 1
	player.CreatedAt = now
	player.UpdatedAt = now
	s.players[player.ID] = player.Clone()
	s.usernames[key] = player.ID
	return nil
}

// UpdatePlayer writes the player if its version is current
func (s *Store) UpdatePlayer(_ context.Context, player *domain.Player) error {
	defer s.locks.Lock(player.ID)()
	return s.writePlayer(player)
}

func (s *Store) writePlayer(player *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.players[player.ID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, player.ID)
	}
	if current.Version != player.Version {
		return fmt.Errorf("%w: player %s at version %d, expected %d",
			domain.ErrVersionConflict, player.ID, current.Version, player.Version)
	}
	player.Version++
	player.UpdatedAt = s.now().UTC()
	s.players[player.ID] = player.Clone()
	return nil
}

// Leaderboard orders players by score descending then username
func (s *Store) Leaderboard(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	ranked := s.ranked()
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// PlayerRank returns the 1-based rank of userID
func (s *Store) PlayerRank(_ context.Context, userID string) (int, error) {
	for _, e := range s.ranked() {
		if e.UserID == userID {
			return e.Rank, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, userID)
}

func (s *Store) ranked() []domain.LeaderboardEntry {
	s.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0, len(s.players))
	for _, p := range s.players {
		entries = append(entries, domain.LeaderboardEntry{UserID: p.ID, Username: p.Username, Score: p.Score})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Username < entries[j].Username
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

var (
	_ repository.Player  = (*Store)(nil)
	_ repository.Catalog = (*Store)(nil)
)
