// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// JobDurationBuckets spans 10ms to roughly 45m
var JobDurationBuckets = prometheus.ExponentialBuckets(0.01, 4, 12)

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func counter(subsystem, name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help,
	})
}

// HTTP
var (
	HTTPRequestsTotal = counterVec(subsystemHTTP, "requests_total",
		"HTTP requests by method, route pattern and status.", LabelMethod, LabelPath, LabelStatus)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: subsystemHTTP,
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   HTTPLatencyBuckets,
	}, []string{LabelMethod, LabelPath})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: subsystemHTTP,
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})

	RequestsRejected = counterVec(subsystemSecurity, "rejected_requests_total",
		"Requests refused before reaching a handler, by reason.", LabelReason)
)

// Event bus
var (
	EventsPublished = counterVec(subsystemEvents, "published_total",
		"Events delivered to the metrics subscriber, by type.", LabelType)

	EventHandlerErrors = counterVec(subsystemEvents, "handler_errors_total",
		"Event handler failures, by type.", LabelType)
)

// Game
var (
	PlayersRegistered = counter(subsystemGame, "players_registered_total", "Registered players.")

	MissionTransitions = counterVec(subsystemGame, "mission_transitions_total",
		"Mission state transitions by action and resulting state.", LabelAction, LabelState)

	DropsResolved = counterVec(subsystemGame, "drops_resolved_total",
		"Drop table resolutions by source and difficulty.", LabelSource, LabelDifficulty)

	DroppedItems = counter(subsystemGame, "dropped_items_total", "Items granted by drop tables.")

	ItemUses = counterVec(subsystemGame, "item_uses_total", "Applied item uses by item function.", LabelFunc)

	ItemsCrafted = counterVec(subsystemGame, "items_crafted_total", "Crafts by produced item.", LabelItem)

	EncounterTriggers = counterVec(subsystemGame, "event_triggers_total",
		"Location event outcomes by event and result.", LabelEvent, LabelResult)

	WordleGames = counterVec(subsystemGame, "wordle_games_total", "Finished word games by result.", LabelResult)

	ScoreAwarded = counterVec(subsystemGame, "score_awarded_total", "Score points awarded by source.", LabelSource)
)

// Item catalog cache
var (
	ItemCacheHits   = counter(subsystemCache, "hits_total", "Item catalog cache hits.")
	ItemCacheMisses = counter(subsystemCache, "misses_total", "Item catalog cache misses.")
)

// Background workers
var (
	WorkerJobs = counterVec(subsystemWorker, "jobs_total", "Background jobs run, by result.", LabelResult)

	WorkerJobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: subsystemWorker,
		Name:      "job_duration_seconds",
		Help:      "Background job run time.",
		Buckets:   JobDurationBuckets,
	})

	WorkerJobsDropped = counter(subsystemWorker, "jobs_dropped_total", "Jobs refused because the queue was full.")
)
