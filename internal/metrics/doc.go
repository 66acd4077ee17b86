// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package metrics provides Prometheus metrics for the tracker.

All collectors are registered on the default registry through promauto and
exposed by the HTTP API at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Ingest:
  - perkwatch_ticks_total{result}
  - perkwatch_tick_duration_seconds
  - perkwatch_tick_consecutive_failures
  - perkwatch_tick_last_success_timestamp

Log reading:
  - perkwatch_bytes_fetched_total
  - perkwatch_lines_read_total
  - perkwatch_file_rotations_total
  - perkwatch_transport_errors_total{operation}

Events:
  - perkwatch_events_parsed_total{kind}
  - perkwatch_events_applied_total{kind}
  - perkwatch_events_duplicate_total
  - perkwatch_tracked_players

Notifications:
  - perkwatch_notifications_total{kind,result}
  - perkwatch_leaderboards_posted_total{board,trigger}

State:
  - perkwatch_state_flushes_total{result}
  - perkwatch_state_flush_duration_seconds

Circuit breaker (label name="remote-logs"):
  - circuit_breaker_state
  - circuit_breaker_requests_total{result}
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total{from_state,to_state}

HTTP:
  - http_requests_total{method,endpoint,status}
  - http_request_duration_seconds{method,endpoint}
*/
package metrics
