package sse

import (
	"context"

	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
)

const payloadKeyUserID = "user_id"

// Subscriber forwards every game event on the bus to the hub
type Subscriber struct {
	hub *Hub
}

func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Subscribe registers the forwarder for every type in event.AllTypes
func (s *Subscriber) Subscribe(bus event.Bus) {
	for _, t := range event.AllTypes {
		bus.Subscribe(t, s.forward)
	}
	logger.Info(LogMsgSubscriberReady, "types", len(event.AllTypes))
}

// forward never fails the publisher; a full hub just drops the event.
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	userID := ""
	if fields, err := event.DecodePayload[map[string]interface{}](evt.Payload); err == nil {
		userID, _ = fields[payloadKeyUserID].(string)
	}
	s.hub.Broadcast(string(evt.Type), userID, evt.Payload)
	return nil
}
