package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-yen/hunter-server/internal/eventlog"
)

func entryFor(userID, typ string) eventlog.Entry {
	e := eventlog.Entry{Type: typ, Payload: map[string]interface{}{"n": 1}}
	if userID != "" {
		e.UserID = &userID
	}
	return e
}

func TestEventLog_ListByUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	l := NewEventLog()

	require.NoError(t, l.Append(ctx, entryFor("u1", "player.registered")))
	require.NoError(t, l.Append(ctx, entryFor("u2", "player.registered")))
	require.NoError(t, l.Append(ctx, entryFor("", "catalog.seeded")))
	require.NoError(t, l.Append(ctx, entryFor("u1", "mission.claimed")))
	require.NoError(t, l.Append(ctx, entryFor("u1", "item.used")))

	got, err := l.ListByUser(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "item.used", got[0].Type)
	assert.Equal(t, "mission.claimed", got[1].Type)
	assert.Greater(t, got[0].ID, got[1].ID)

	all, err := l.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := l.ListByUser(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestEventLog_AppendCopiesInput(t *testing.T) {
	ctx := context.Background()
	l := NewEventLog()

	e := entryFor("u1", "item.used")
	require.NoError(t, l.Append(ctx, e))
	e.Payload["n"] = 2
	*e.UserID = "u2"

	got, _ := l.ListByUser(ctx, "u1", 1)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Payload["n"])
}

func TestEventLog_DeleteBefore(t *testing.T) {
	ctx := context.Background()
	l := NewEventLog()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := range 4 {
		at := base.Add(time.Duration(i) * 24 * time.Hour)
		l.now = func() time.Time { return at }
		require.NoError(t, l.Append(ctx, entryFor("u1", "tick")))
	}

	deleted, err := l.DeleteBefore(ctx, base.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, _ := l.ListByUser(ctx, "u1", 0)
	require.Len(t, left, 2)
	assert.Equal(t, base.Add(72*time.Hour), left[0].CreatedAt)
}
