package event

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(ItemUsed, func(ctx context.Context, evt Event) error {
		assert.Equal(t, ItemUsed, evt.Type)
		payload, err := DecodePayload[ItemUsedPayloadV1](evt.Payload)
		require.NoError(t, err)
		assert.Equal(t, "torch", payload.ItemID)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewItemUsedEvent("u1", "torch", "torch_buff", "r1", 1))

	require.NoError(t, err)
	assert.True(t, handled, "handler was not called")
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, evt Event) error {
		count++
		return nil
	}

	bus.Subscribe(DropsResolved, handler)
	bus.Subscribe(DropsResolved, handler)

	require.NoError(t, bus.Publish(context.Background(), NewDropsResolvedEvent("u1", "chest", 3, []string{"a"})))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), NewEncounterEvent("u1", "slime", true, 10)))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(WordleFinished, func(ctx context.Context, evt Event) error {
		return errors.New("handler error")
	})

	ran := false
	bus.Subscribe(WordleFinished, func(ctx context.Context, evt Event) error {
		panic("boom")
	})
	bus.Subscribe(WordleFinished, func(ctx context.Context, evt Event) error {
		ran = true
		return nil
	})

	err := bus.Publish(context.Background(), NewWordleFinishedEvent("u1", "t1", true, 3))
	require.Error(t, err)
	assert.ErrorContains(t, err, "2 of 3 handlers failed")
	assert.ErrorContains(t, err, "handler panic: boom")
	assert.True(t, ran, "later handlers still run")
}

func TestDecodePayload_FromMap(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u1", "task_id": "t1", "action": "claim", "to_state": "claimed"}

	p, err := DecodePayload[MissionTransitionPayloadV1](raw)

	require.NoError(t, err)
	assert.Equal(t, "claim", p.Action)
	assert.Equal(t, "claimed", p.ToState)
}

func TestDecodePayload_Variants(t *testing.T) {
	want := ItemUsedPayloadV1{UserID: "u1", ItemID: "potion"}

	fromPtr, err := DecodePayload[ItemUsedPayloadV1](&want)
	require.NoError(t, err)
	assert.Equal(t, want, fromPtr)

	fromRaw, err := DecodePayload[ItemUsedPayloadV1](json.RawMessage(`{"user_id":"u1","item_id":"potion"}`))
	require.NoError(t, err)
	assert.Equal(t, "potion", fromRaw.ItemID)

	_, err = DecodePayload[ItemUsedPayloadV1]((*ItemUsedPayloadV1)(nil))
	assert.Error(t, err)

	_, err = DecodePayload[ItemUsedPayloadV1]([]byte("not json"))
	assert.Error(t, err)
}

func TestReadDeadLetters(t *testing.T) {
	in := strings.NewReader(`{"schema_version":"1.0","event":{"type":"item.used","payload":{"user_id":"u1"}},"attempts":3}

{"schema_version":"1.0","event":{"type":"mission.transition"},"attempts":1,"last_error":"boom"}
`)
	entries, err := ReadDeadLetters(in)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, "boom", entries[1].LastError)

	_, err = ReadDeadLetters(strings.NewReader("{broken\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestConstructorsStampVersion(t *testing.T) {
	evt := NewMissionTransitionEvent(MissionTransitionPayloadV1{UserID: "u", TaskID: "t", Action: "accept", ToState: "in_progress"})
	assert.Equal(t, EventSchemaVersion, evt.Version)
	p := evt.Payload.(MissionTransitionPayloadV1)
	assert.NotZero(t, p.Timestamp)
}
