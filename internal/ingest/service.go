// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package ingest

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/perkwatch/internal/leaderboard"
	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/metrics"
	"github.com/tomtom215/perkwatch/internal/notify"
)

// Service defaults.
const (
	DefaultInterval          = 30 * time.Second
	DefaultFailureThreshold  = 5
	DefaultBackoffMultiplier = 3
	DefaultShutdownTimeout   = 30 * time.Second
)

// ServiceConfig configures the poll loop.
type ServiceConfig struct {
	Interval time.Duration

	// FailureThreshold is the number of consecutive failed ticks after which
	// the loop waits BackoffMultiplier intervals instead of one.
	FailureThreshold  int
	BackoffMultiplier int

	// ShutdownTimeout bounds the final flush.
	ShutdownTimeout time.Duration
}

// DefaultServiceConfig returns the default poll loop configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Interval:          DefaultInterval,
		FailureThreshold:  DefaultFailureThreshold,
		BackoffMultiplier: DefaultBackoffMultiplier,
		ShutdownTimeout:   DefaultShutdownTimeout,
	}
}

// Service runs Driver.Tick on an interval. It implements suture.Service.
type Service struct {
	driver    *Driver
	cfg       ServiceConfig
	planner   *leaderboard.Planner
	announcer *notify.Announcer
	logger    zerolog.Logger
	now       func() time.Time

	consecutiveFailures int
}

// NewService creates the poll loop. A nil planner disables leaderboards.
func NewService(driver *Driver, cfg ServiceConfig, planner *leaderboard.Planner, announcer *notify.Announcer) *Service {
	def := DefaultServiceConfig()
	if cfg.Interval <= 0 {
		cfg.Interval = def.Interval
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.BackoffMultiplier <= 0 {
		cfg.BackoffMultiplier = def.BackoffMultiplier
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if announcer == nil {
		announcer = driver.announcer
	}

	return &Service{
		driver:    driver,
		cfg:       cfg,
		planner:   planner,
		announcer: announcer,
		logger:    logging.WithComponent("ingest"),
		now:       time.Now,
	}
}

// Serve ticks immediately and then once per interval until ctx is done.
// The state is flushed before returning.
func (s *Service) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.cfg.Interval).
		Str("base", s.driver.cfg.BasePath).
		Str("skill_notifications", string(s.driver.cfg.Policy)).
		Int("players", len(s.driver.Snapshot().Players)).
		Msg("Monitoring started")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return ctx.Err()
		case <-timer.C:
		}

		s.RunOnce(ctx)
		timer.Reset(s.nextWait())
	}
}

// RunOnce runs a tick followed by any leaderboards that are due.
func (s *Service) RunOnce(ctx context.Context) {
	start := time.Now()
	res, err := s.driver.Tick(ctx)
	metrics.RecordTick(time.Since(start), err)

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.consecutiveFailures++
		metrics.TickConsecutiveFailures.Set(float64(s.consecutiveFailures))
		s.logger.Error().Err(err).Int("consecutive_failures", s.consecutiveFailures).Msg("Tick failed")
		return
	}
	s.consecutiveFailures = 0
	metrics.TickConsecutiveFailures.Set(0)

	if res.Applied > 0 {
		s.logger.Info().
			Int("applied", res.Applied).
			Int("notifications", res.Intents).
			Int("notification_failures", res.NotifyFails).
			Msg("Processed new events")
	}

	s.postLeaderboards(ctx, res.Applied)
}

// nextWait returns the delay before the next tick. After FailureThreshold
// consecutive failures it returns the extended pause once and resets the
// counter.
func (s *Service) nextWait() time.Duration {
	if s.consecutiveFailures < s.cfg.FailureThreshold {
		return s.cfg.Interval
	}
	wait := s.cfg.Interval * time.Duration(s.cfg.BackoffMultiplier)
	s.logger.Warn().
		Int("consecutive_failures", s.consecutiveFailures).
		Dur("wait", wait).
		Msg("Too many consecutive errors, backing off")
	s.consecutiveFailures = 0
	metrics.TickConsecutiveFailures.Set(0)
	return wait
}

func (s *Service) postLeaderboards(ctx context.Context, applied int) {
	if s.planner == nil {
		return
	}
	snap := s.driver.Snapshot()
	for _, post := range s.planner.Observe(s.now(), applied, len(snap.Players)) {
		board, err := leaderboard.Build(snap, post.Kind, post.Skill, leaderboard.DefaultLimit)
		if err != nil {
			s.logger.Warn().Err(err).Str("kind", string(post.Kind)).Msg("Leaderboard build failed")
			continue
		}
		if _, err := s.announcer.PostBoard(ctx, board, post.Trigger); err != nil && ctx.Err() != nil {
			return
		}
	}
}

func (s *Service) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.driver.Flush(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Final state flush failed")
		return
	}
	s.logger.Info().Msg("Monitoring stopped")
}

// String implements fmt.Stringer for suture logging.
func (s *Service) String() string { return "ingest" }
