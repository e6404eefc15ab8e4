package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/hunter-yen/hunter-server/internal/logger"
)

// Handler streams hub events as text/event-stream.
// @Summary Live game event stream
// @Description Server-sent events. Filter with types=a,b and userId.
// @Tags stream
// @Produce text/event-stream
// @Param types query string false "Comma separated event types"
// @Param userId query string false "Only events for this player"
// @Success 200 {string} string "event stream"
// @Router /stream [get]
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		filter := parseFilter(r)
		client := hub.Register(filter)
		if client == nil {
			http.Error(w, "stream closed", http.StatusServiceUnavailable)
			return
		}
		log := logger.FromContext(r.Context()).With("client_id", client.ID)
		log.Info(LogMsgClientConnected, "user_id", filter.UserID, "clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "clients", hub.ClientCount())
		}()

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		send := func(e Event) bool {
			msg, err := Format(e)
			if err != nil {
				log.Error(LogMsgWriteError, "type", e.Type, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Debug(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !send(Event{ID: client.ID, Type: EventTypeConnected, Timestamp: time.Now().Unix()}) {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, open := <-client.Events:
				if !open || !send(e) {
					return
				}
			case <-keepalive.C:
				if !send(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()}) {
					return
				}
			}
		}
	}
}

func parseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{UserID: strings.TrimSpace(q.Get(QueryUserID))}
	for _, t := range strings.Split(q.Get(QueryTypes), ",") {
		if t = strings.TrimSpace(t); t != "" {
			if f.Types == nil {
				f.Types = make(map[string]bool)
			}
			f.Types[t] = true
		}
	}
	return f
}
