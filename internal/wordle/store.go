package wordle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// Store keeps in-flight games. Implementations expire games after a TTL.
type Store interface {
	Load(ctx context.Context, userID, taskID string) (*Game, error)
	Save(ctx context.Context, g *Game) error
	Delete(ctx context.Context, userID, taskID string) error
}

// Key returns the store key of a player's game for a task
func Key(userID, taskID string) string {
	return KeyPrefix + userID + ":" + taskID
}

// RedisStore keeps games as JSON strings with a TTL
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, userID, taskID string) (*Game, error) {
	raw, err := s.rdb.Get(ctx, Key(userID, taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadGame, err)
	}
	var g Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadGame, err)
	}
	return &g, nil
}

func (s *RedisStore) Save(ctx context.Context, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToEncodeGame, err)
	}
	if err := s.rdb.Set(ctx, Key(g.UserID, g.TaskID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveGame, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID, taskID string) error {
	return s.rdb.Del(ctx, Key(userID, taskID)).Err()
}

// MemoryStore keeps games in a size-bounded expiring LRU
type MemoryStore struct {
	games *expirable.LRU[string, Game]
}

// NewMemoryStore creates an in-process store holding at most size games
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryGames
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{games: expirable.NewLRU[string, Game](size, nil, ttl)}
}

func (s *MemoryStore) Load(_ context.Context, userID, taskID string) (*Game, error) {
	g, ok := s.games.Get(Key(userID, taskID))
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	g.Attempts = append([]Attempt(nil), g.Attempts...)
	return &g, nil
}

func (s *MemoryStore) Save(_ context.Context, g *Game) error {
	c := *g
	c.Attempts = append([]Attempt(nil), g.Attempts...)
	s.games.Add(Key(g.UserID, g.TaskID), c)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, taskID string) error {
	s.games.Remove(Key(userID, taskID))
	return nil
}
