package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent returns the "event:" value of the next message on the stream
func readEvent(t *testing.T, r *bufio.Reader) (typ, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			typ = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && typ != "":
			return typ, data
		}
	}
}

func TestHandler_StreamsFilteredEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?userId=u1&types=item.used,%20drop.resolved", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)
	typ, _ := readEvent(t, body)
	assert.Equal(t, EventTypeConnected, typ)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, time.Millisecond)
	hub.Broadcast("item.used", "u2", nil)
	hub.Broadcast("mission.transitioned", "u1", nil)
	hub.Broadcast("drop.resolved", "u1", map[string]int{"count": 2})

	typ, data := readEvent(t, body)
	assert.Equal(t, "drop.resolved", typ)
	assert.Contains(t, data, `"count":2`)

	cancel()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHandler_HubStopped(t *testing.T) {
	hub := NewHub()
	hub.Start()
	hub.Stop()

	w := httptest.NewRecorder()
	Handler(hub).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestParseFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/stream?types=a,,b&userId=%20u1%20", nil)
	f := parseFilter(r)
	assert.Equal(t, "u1", f.UserID)
	assert.Equal(t, map[string]bool{"a": true, "b": true}, f.Types)

	assert.Nil(t, parseFilter(httptest.NewRequest(http.MethodGet, "/stream", nil)).Types)
}
