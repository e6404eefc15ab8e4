package metrics

import (
	"context"
	"strconv"

	"github.com/hunter-yen/hunter-server/internal/event"
	"github.com/hunter-yen/hunter-server/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all game events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.PlayerRegistered:
		PlayersRegistered.Inc()

	case event.MissionTransitioned:
		var p event.MissionTransitionPayloadV1
		if p, err = event.DecodePayload[event.MissionTransitionPayloadV1](evt.Payload); err == nil {
			MissionTransitions.WithLabelValues(p.Action, p.ToState).Inc()
			if p.ScoreGained > 0 {
				ScoreAwarded.WithLabelValues(SourceMission).Add(float64(p.ScoreGained))
			}
		}

	case event.DropsResolved:
		var p event.DropsResolvedPayloadV1
		if p, err = event.DecodePayload[event.DropsResolvedPayloadV1](evt.Payload); err == nil {
			DropsResolved.WithLabelValues(p.Source, strconv.Itoa(p.Difficulty)).Inc()
			DroppedItems.Add(float64(len(p.ItemIDs)))
		}

	case event.ItemUsed:
		var p event.ItemUsedPayloadV1
		if p, err = event.DecodePayload[event.ItemUsedPayloadV1](evt.Payload); err == nil {
			ItemUses.WithLabelValues(p.ItemFunc).Inc()
		}

	case event.ItemCrafted:
		var p event.ItemCraftedPayloadV1
		if p, err = event.DecodePayload[event.ItemCraftedPayloadV1](evt.Payload); err == nil {
			ItemsCrafted.WithLabelValues(p.ResultID).Inc()
		}

	case event.EncounterTriggered:
		var p event.EncounterPayloadV1
		if p, err = event.DecodePayload[event.EncounterPayloadV1](evt.Payload); err == nil {
			result := ResultRejected
			if p.Success {
				result = ResultSuccess
			}
			EncounterTriggers.WithLabelValues(p.Encounter, result).Inc()
			if p.ScoreGained > 0 {
				ScoreAwarded.WithLabelValues(p.Encounter).Add(float64(p.ScoreGained))
			}
		}

	case event.WordleFinished:
		var p event.WordleFinishedPayloadV1
		if p, err = event.DecodePayload[event.WordleFinishedPayloadV1](evt.Payload); err == nil {
			result := ResultLost
			if p.Won {
				result = ResultWon
			}
			WordleGames.WithLabelValues(result).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

type instrumentedBus struct {
	event.Bus
}

// InstrumentBus counts failed deliveries per event type on the way through.
func InstrumentBus(bus event.Bus) event.Bus {
	return instrumentedBus{Bus: bus}
}

func (b instrumentedBus) Publish(ctx context.Context, evt event.Event) error {
	err := b.Bus.Publish(ctx, evt)
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
	}
	return err
}
