// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/metrics"
)

// BreakerName labels the transport circuit breaker in logs and metrics.
const BreakerName = "remote-logs"

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("remote transport circuit open")

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	// Interval is the rolling window over which failures are counted while
	// closed.
	Interval time.Duration

	// Timeout is how long the circuit stays open before a probe is let
	// through.
	Timeout time.Duration

	// MinRequests is the number of calls in a window before the failure
	// ratio is considered.
	MinRequests uint32

	// FailureRatio opens the circuit once reached.
	FailureRatio float64
}

// DefaultBreakerSettings returns settings suited to a poll interval of
// tens of seconds.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Interval:     5 * time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps a Connector so that connects and every session operation
// pass through one shared circuit breaker.
//
// Not-found errors are expected during discovery (a guessed dated folder
// may not exist) and do not count as failures.
type Breaker struct {
	next Connector
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

// NewBreaker wraps next.
func NewBreaker(next Connector, settings BreakerSettings) *Breaker {
	name := BreakerName

	// Initialize circuit breaker state metrics
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= settings.FailureRatio
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
	})

	return &Breaker{next: next, cb: cb, name: name}
}

// State returns the current breaker state as "closed", "half-open" or "open".
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// Connect implements Connector.
func (b *Breaker) Connect(ctx context.Context) (Session, error) {
	res, err := b.execute(func() (any, error) {
		return b.next.Connect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &breakerSession{b: b, next: res.(Session)}, nil
}

// execute runs fn through the breaker and records the outcome.
func (b *Breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, errors.Join(ErrCircuitOpen, err)
		}
		if errors.Is(err, ErrNotFound) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

type breakerSession struct {
	b    *Breaker
	next Session
}

func (s *breakerSession) ListDirectories(ctx context.Context, dir string) ([]string, error) {
	return castResult[[]string](s.b.execute(func() (any, error) {
		return s.next.ListDirectories(ctx, dir)
	}))
}

func (s *breakerSession) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return castResult[[]string](s.b.execute(func() (any, error) {
		return s.next.ListFiles(ctx, dir)
	}))
}

func (s *breakerSession) Size(ctx context.Context, name string) (uint64, error) {
	return castResult[uint64](s.b.execute(func() (any, error) {
		return s.next.Size(ctx, name)
	}))
}

func (s *breakerSession) FetchRange(ctx context.Context, name string, from uint64) ([]byte, error) {
	return castResult[[]byte](s.b.execute(func() (any, error) {
		return s.next.FetchRange(ctx, name, from)
	}))
}

func (s *breakerSession) Close() error {
	return s.next.Close()
}

// castResult type-asserts a breaker result. A failed call yields the zero
// value and the error.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, errors.New("circuit breaker: unexpected result type")
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
