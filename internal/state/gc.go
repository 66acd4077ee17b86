// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package state

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/perkwatch/internal/logging"
)

// DefaultGCInterval is how often GCService reclaims value log space.
const DefaultGCInterval = 10 * time.Minute

// GCService runs BadgerStore.RunGC on an interval. It implements
// suture.Service and stops once the store is closed.
type GCService struct {
	store    *BadgerStore
	interval time.Duration
}

// NewGCService creates the service. A non-positive interval means
// DefaultGCInterval.
func NewGCService(store *BadgerStore, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = DefaultGCInterval
	}
	return &GCService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.store.RunGC(); err != nil {
				if errors.Is(err, ErrClosed) {
					return nil
				}
				logging.Warn().Err(err).Msg("State store GC failed")
			}
		}
	}
}

// String names the service in supervisor events.
func (g *GCService) String() string { return "state-gc" }
