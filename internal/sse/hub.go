// Package sse pushes game events to connected clients as server-sent events.
package sse

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hunter-yen/hunter-server/internal/logger"
)

// Event is one message on the stream
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	UserID    string      `json:"userId,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Filter narrows what a client receives. Empty fields match everything.
type Filter struct {
	Types  map[string]bool
	UserID string
}

func (f Filter) matches(e Event) bool {
	if len(f.Types) > 0 && !f.Types[e.Type] {
		return false
	}
	return f.UserID == "" || f.UserID == e.UserID
}

// Client is a registered stream consumer. Events is closed on Unregister or Stop.
type Client struct {
	ID     string
	Events chan Event
	filter Filter
}

// Hub fans events out to clients from a single loop so a slow client only
// loses its own events.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool

	broadcast chan Event
	quit      chan struct{}
	wg        sync.WaitGroup
	now       func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		quit:      make(chan struct{}),
		now:       time.Now,
	}
}

func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel, which ends their handlers.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	close(h.quit)
	h.mu.Unlock()

	h.wg.Wait()

	h.mu.Lock()
	for id, c := range h.clients {
		close(c.Events)
		delete(h.clients, id)
	}
	h.mu.Unlock()
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.quit:
			return
		case e := <-h.broadcast:
			h.deliver(e)
		}
	}
}

func (h *Hub) deliver(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if !c.filter.matches(e) {
			continue
		}
		select {
		case c.Events <- e:
		default:
			logger.Debug(LogMsgClientLagging, "client_id", c.ID, "type", e.Type)
		}
	}
}

// Register adds a client. It returns nil once the hub is stopped.
func (h *Hub) Register(filter Filter) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		Events: make(chan Event, ClientEventBuffer),
		filter: filter,
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.clients[c.ID] = c
	return c
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
	}
}

// Broadcast queues an event without blocking the publisher.
func (h *Hub) Broadcast(eventType, userID string, payload interface{}) bool {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: h.now().Unix(),
		Payload:   payload,
	}
	select {
	case h.broadcast <- e:
		return true
	default:
		logger.Warn(LogMsgBroadcastDropped, "type", eventType)
		return false
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Format renders e in the text/event-stream wire format
func Format(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	if e.ID == "" {
		return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", e.Type, data), nil
	}
	return fmt.Appendf(nil, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data), nil
}
