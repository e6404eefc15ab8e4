package wordle

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, rdb
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Load(ctx, "u1", "t1")
	require.ErrorIs(t, err, domain.ErrGameNotFound)

	g := NewGame("u1", "t1", "TIGER", 6, time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))
	_, err = g.Guess("CHAIR")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, g))

	loaded, err := store.Load(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "TIGER", loaded.Word)
	assert.Equal(t, StatusPlaying, loaded.Status)
	require.Len(t, loaded.Attempts, 1)
	assert.Equal(t, "CHAIR", loaded.Attempts[0].Guess)
	assert.True(t, g.StartedAt.Equal(loaded.StartedAt))

	// Games are keyed per task
	_, err = store.Load(ctx, "u1", "t2")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)

	require.NoError(t, store.Delete(ctx, "u1", "t1"))
	_, err = store.Load(ctx, "u1", "t1")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	_, rdb := newMiniRedis(t)
	exerciseStore(t, NewRedisStore(rdb, time.Hour))
}

func TestRedisStore_Expires(t *testing.T) {
	s, rdb := newMiniRedis(t)
	store := NewRedisStore(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, NewGame("u1", "t1", "APPLE", 6, time.Now())))
	assert.True(t, s.Exists(Key("u1", "t1")))
	assert.Equal(t, time.Hour, s.TTL(Key("u1", "t1")))

	s.FastForward(2 * time.Hour)
	_, err := store.Load(ctx, "u1", "t1")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, rdb := newMiniRedis(t)
	require.NoError(t, s.Set(Key("u1", "t1"), "{not json"))

	_, err := NewRedisStore(rdb, time.Hour).Load(context.Background(), "u1", "t1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrGameNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	exerciseStore(t, NewMemoryStore(16, time.Hour))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(16, time.Hour)
	ctx := context.Background()
	g := NewGame("u1", "t1", "APPLE", 6, time.Now())
	require.NoError(t, store.Save(ctx, g))

	_, err := g.Guess("TIGER")
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "u1", "t1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Attempts)
}

func TestMemoryStore_EvictsOldest(t *testing.T) {
	store := NewMemoryStore(1, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, NewGame("u1", "t1", "APPLE", 6, time.Now())))
	require.NoError(t, store.Save(ctx, NewGame("u1", "t2", "POWER", 6, time.Now())))

	_, err := store.Load(ctx, "u1", "t1")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
	_, err = store.Load(ctx, "u1", "t2")
	assert.NoError(t, err)
}
