// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/perkwatch/internal/engine"
	"github.com/tomtom215/perkwatch/internal/models"
	"github.com/tomtom215/perkwatch/internal/notify"
	"github.com/tomtom215/perkwatch/internal/state"
	"github.com/tomtom215/perkwatch/internal/transport"
)

const base = "/Logs"

// 2026-03-14; the newest archive folder name below sorts above its guess.
var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// recorder keeps delivered embeds in order.
type recorder struct {
	mu     sync.Mutex
	titles []string
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Send(_ context.Context, e notify.Embed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, e.Title)
	return nil
}

func (r *recorder) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

// failingStore rejects every Save until ok is set.
type failingStore struct {
	mu    sync.Mutex
	ok    bool
	saves int
}

func (s *failingStore) Load(context.Context) (*models.SystemState, error) {
	return models.NewSystemState(), nil
}

func (s *failingStore) Save(context.Context, *models.SystemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if !s.ok {
		return errors.New("disk full")
	}
	return nil
}

func (s *failingStore) Close() error { return nil }

type fixture struct {
	fs       *transport.MemFS
	store    state.Store
	rec      *recorder
	driver   *Driver
	spawnNow time.Time
}

func newFixture(t *testing.T, policy engine.SkillPolicy) *fixture {
	t.Helper()

	f := &fixture{
		fs:       transport.NewMemFS(),
		store:    state.NewFileStore(filepath.Join(t.TempDir(), "player_stats.json")),
		rec:      &recorder{},
		spawnNow: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	f.fs.Mkdir(base)
	f.driver = f.newDriver(t, models.NewSystemState(), policy)
	return f
}

func (f *fixture) newDriver(t *testing.T, st *models.SystemState, policy engine.SkillPolicy) *Driver {
	t.Helper()
	return NewDriver(
		Config{BasePath: base, Policy: policy},
		st,
		f.fs,
		f.store,
		notify.NewAnnouncer(f.rec),
		WithClock(func() time.Time { return testNow }),
		WithEngine(engine.New(engine.WithClock(func() time.Time { return f.spawnNow }))),
	)
}

func (f *fixture) tick(t *testing.T) TickResult {
	t.Helper()
	res, err := f.driver.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	return res
}

// shortReader wraps a connector so the next FetchRange drops the last cut
// bytes, as if the file shrank between Size and the read.
type shortReader struct {
	transport.Connector
	mu  sync.Mutex
	cut int
}

func (s *shortReader) Connect(ctx context.Context) (transport.Session, error) {
	sess, err := s.Connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &shortSession{Session: sess, owner: s}, nil
}

type shortSession struct {
	transport.Session
	owner *shortReader
}

func (s *shortSession) FetchRange(ctx context.Context, name string, from uint64) ([]byte, error) {
	data, err := s.Session.FetchRange(ctx, name, from)
	if err != nil {
		return nil, err
	}
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	if s.owner.cut > 0 && s.owner.cut <= len(data) {
		data = data[:len(data)-s.owner.cut]
		s.owner.cut = 0
	}
	return data, nil
}
