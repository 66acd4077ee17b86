// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Ingest ticks (duration, outcome, consecutive failures)
// - Log reading (bytes, lines, rotations, transport errors)
// - Event processing per kind (parsed, applied, duplicates)
// - Notifications and leaderboards
// - State persistence
// - Circuit breaker around the remote transport
// - HTTP read API

var (
	// Ingest Metrics
	TicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_ticks_total",
			Help: "Total number of ingest ticks",
		},
		[]string{"result"}, // "success", "error"
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "perkwatch_tick_duration_seconds",
			Help:    "Duration of one ingest tick in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	TickConsecutiveFailures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perkwatch_tick_consecutive_failures",
			Help: "Current number of consecutive failed ticks",
		},
	)

	TickLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perkwatch_tick_last_success_timestamp",
			Help: "Unix timestamp of the last successful tick",
		},
	)

	// Log Reading Metrics
	BytesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "perkwatch_bytes_fetched_total",
			Help: "Total number of log bytes fetched from the remote server",
		},
	)

	LinesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "perkwatch_lines_read_total",
			Help: "Total number of log lines read",
		},
	)

	FileRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "perkwatch_file_rotations_total",
			Help: "Total number of log files detected as truncated or rotated",
		},
	)

	TransportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_transport_errors_total",
			Help: "Total number of remote transport errors",
		},
		[]string{"operation"}, // "list_dirs", "list_files", "size", "fetch"
	)

	// Event Metrics
	EventsParsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_events_parsed_total",
			Help: "Total number of PerkLog events parsed",
		},
		[]string{"kind"},
	)

	EventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_events_applied_total",
			Help: "Total number of events that changed player state",
		},
		[]string{"kind"},
	)

	EventsDuplicate = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "perkwatch_events_duplicate_total",
			Help: "Total number of events suppressed as duplicates",
		},
	)

	DedupKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perkwatch_dedup_keys",
			Help: "Number of event keys held by the dedup set",
		},
	)

	DedupEvicted = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perkwatch_dedup_evicted_keys",
			Help: "Event keys evicted from the dedup set since startup",
		},
	)

	TrackedPlayers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "perkwatch_tracked_players",
			Help: "Number of players with a statistics record",
		},
	)

	// Notification Metrics
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_notifications_total",
			Help: "Total number of notifications attempted",
		},
		[]string{"kind", "result"}, // result: "sent", "failed"
	)

	LeaderboardsPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_leaderboards_posted_total",
			Help: "Total number of leaderboards posted",
		},
		[]string{"board", "trigger"}, // trigger: "schedule", "activity"
	)

	// State Metrics
	StateFlushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "perkwatch_state_flushes_total",
			Help: "Total number of state document flushes",
		},
		[]string{"result"}, // "success", "error"
	)

	StateFlushDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "perkwatch_state_flush_duration_seconds",
			Help:    "Duration of state document flushes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// RecordTick records the outcome of one ingest tick.
func RecordTick(duration time.Duration, err error) {
	TickDuration.Observe(duration.Seconds())
	if err != nil {
		TicksTotal.WithLabelValues("error").Inc()
		return
	}
	TicksTotal.WithLabelValues("success").Inc()
	TickLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordTransportError counts a failed transport operation.
func RecordTransportError(operation string) {
	TransportErrors.WithLabelValues(operation).Inc()
}

// RecordFetch records a successful range fetch.
func RecordFetch(bytes, lines int, rotated bool) {
	BytesFetched.Add(float64(bytes))
	LinesRead.Add(float64(lines))
	if rotated {
		FileRotations.Inc()
	}
}

// RecordEvent records a parsed event and whether it was novel and changed
// state.
func RecordEvent(kind string, duplicate, applied bool) {
	EventsParsed.WithLabelValues(kind).Inc()
	if duplicate {
		EventsDuplicate.Inc()
		return
	}
	if applied {
		EventsApplied.WithLabelValues(kind).Inc()
	}
}

// RecordDedup publishes the dedup set's size and eviction count.
func RecordDedup(size int, evicted int64) {
	DedupKeys.Set(float64(size))
	DedupEvicted.Set(float64(evicted))
}

// RecordNotification records a notification delivery attempt.
func RecordNotification(kind string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	NotificationsTotal.WithLabelValues(kind, result).Inc()
}

// RecordLeaderboard records a posted leaderboard.
func RecordLeaderboard(board, trigger string) {
	LeaderboardsPosted.WithLabelValues(board, trigger).Inc()
}

// RecordStateFlush records a state document flush.
func RecordStateFlush(duration time.Duration, err error) {
	StateFlushDuration.Observe(duration.Seconds())
	if err != nil {
		StateFlushes.WithLabelValues("error").Inc()
		return
	}
	StateFlushes.WithLabelValues("success").Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
