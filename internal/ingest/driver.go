// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/perkwatch/internal/cache"
	"github.com/tomtom215/perkwatch/internal/engine"
	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/metrics"
	"github.com/tomtom215/perkwatch/internal/models"
	"github.com/tomtom215/perkwatch/internal/notify"
	"github.com/tomtom215/perkwatch/internal/perklog"
	"github.com/tomtom215/perkwatch/internal/state"
	"github.com/tomtom215/perkwatch/internal/transport"
)

// ErrNoFolders is returned by Tick when no candidate folder could be listed.
var ErrNoFolders = errors.New("no log folder could be listed")

// Config configures a Driver.
type Config struct {
	// BasePath is the remote log directory, e.g. "/Logs".
	BasePath string

	Policy engine.SkillPolicy

	// DedupCapacity bounds the event-key cache; zero means
	// cache.DefaultDedupCapacity.
	DedupCapacity int
}

// TickResult summarizes one tick.
type TickResult struct {
	Folders     int
	Files       int
	FileErrors  int
	Rotations   int
	Bytes       int
	Lines       int
	Events      int
	Duplicates  int
	Applied     int
	Intents     int
	NotifyFails int
	Flushed     bool
}

// Driver owns the SystemState and mutates it one tick at a time.
type Driver struct {
	mu sync.Mutex

	cfg       Config
	connector transport.Connector
	store     state.Store
	engine    *engine.Engine
	dedup     *cache.Dedup
	announcer *notify.Announcer
	now       func() time.Time

	state *models.SystemState
	dirty bool

	snapshot atomic.Pointer[models.SystemState]
}

// Option configures a Driver.
type Option func(*Driver)

// WithEngine replaces the default engine.
func WithEngine(e *engine.Engine) Option {
	return func(d *Driver) { d.engine = e }
}

// WithClock sets the clock used to guess dated folders.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// NewDriver creates a driver over an already loaded state. A nil state
// starts empty; a nil announcer logs notifications.
func NewDriver(cfg Config, st *models.SystemState, connector transport.Connector, store state.Store, announcer *notify.Announcer, opts ...Option) *Driver {
	if st == nil {
		st = models.NewSystemState()
	}
	if cfg.Policy == "" {
		cfg.Policy = engine.SkillPolicyMilestones
	}
	if announcer == nil {
		announcer = notify.NewAnnouncer(nil)
	}

	d := &Driver{
		cfg:       cfg,
		connector: connector,
		store:     store,
		engine:    engine.New(),
		dedup:     cache.NewDedup(cfg.DedupCapacity),
		announcer: announcer,
		now:       time.Now,
		state:     st,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.publish()
	return d
}

// Snapshot returns the state as of the last completed tick. The returned
// value is shared and must not be modified.
func (d *Driver) Snapshot() *models.SystemState {
	return d.snapshot.Load()
}

// Dirty reports whether the state has unflushed changes.
func (d *Driver) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Tick runs one polling pass. Ticks never overlap: a concurrent call waits
// for the running one.
//
// The returned error covers failures that stopped the whole pass (no
// session, no folder listable). Per-file problems are counted in the
// result and logged only.
func (d *Driver) Tick(ctx context.Context) (TickResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx)

	var res TickResult
	session, err := d.connector.Connect(ctx)
	if err != nil {
		metrics.RecordTransportError("connect")
		return res, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Debug().Err(cerr).Msg("Session close failed")
		}
	}()

	listed := 0
	for _, folder := range transport.CandidateFolders(ctx, session, d.cfg.BasePath, d.now()) {
		if ctx.Err() != nil {
			break
		}
		res.Folders++

		files, err := transport.CandidateFiles(ctx, session, d.cfg.BasePath, folder)
		if err != nil {
			if !errors.Is(err, transport.ErrNotFound) {
				metrics.RecordTransportError("list")
				log.Warn().Err(err).Str("folder", folder).Msg("Error processing folder")
			}
			continue
		}
		listed++

		for _, id := range files {
			if ctx.Err() != nil {
				break
			}
			if err := d.processFile(ctx, session, id, &res); err != nil {
				res.FileErrors++
				log.Warn().Err(err).Str("file", id.Path(d.cfg.BasePath)).Msg("Error reading log file")
			}
		}
	}

	_ = d.flushLocked(ctx, &res)
	d.publish()

	if listed == 0 && ctx.Err() == nil {
		return res, ErrNoFolders
	}

	log.Debug().
		Int("files", res.Files).
		Int("lines", res.Lines).
		Int("applied", res.Applied).
		Int("duplicates", res.Duplicates).
		Msg("Tick complete")
	return res, ctx.Err()
}

// processFile reads the unread tail of one file. The cursor only moves once
// the fetch has succeeded.
func (d *Driver) processFile(ctx context.Context, fs transport.RemoteFS, id models.LogFileID, res *TickResult) error {
	path := id.Path(d.cfg.BasePath)
	res.Files++

	size, err := fs.Size(ctx, path)
	if errors.Is(err, transport.ErrNotFound) {
		return nil
	}
	if err != nil {
		metrics.RecordTransportError("size")
		return fmt.Errorf("size: %w", err)
	}

	cursor := d.state.Cursors.Get(path)
	rotated := size < cursor
	if rotated {
		logging.Ctx(ctx).Info().Str("file", path).Uint64("size", size).Uint64("cursor", cursor).
			Msg("Log file rotated, starting from beginning")
		cursor = 0
		res.Rotations++
	}
	if size == cursor {
		if rotated {
			d.setCursor(path, 0)
		}
		return nil
	}

	data, err := fs.FetchRange(ctx, path, cursor)
	if err != nil {
		metrics.RecordTransportError("fetch")
		return fmt.Errorf("fetch from %d: %w", cursor, err)
	}
	// Bytes appended after the size query belong to the next tick.
	if want := size - cursor; uint64(len(data)) > want {
		data = data[:want]
	}

	lines := d.processChunk(ctx, data, res)
	res.Bytes += len(data)
	metrics.RecordFetch(len(data), lines, rotated)

	// A short read (the file shrank after Size) only advances past what was
	// actually read.
	next := cursor + uint64(len(data))
	if next > size {
		next = size
	}
	if next < size {
		logging.Ctx(ctx).Debug().Str("file", path).Uint64("size", size).Uint64("read_to", next).
			Msg("Short read, remaining bytes left for the next tick")
	}
	d.setCursor(path, next)
	return nil
}

// processChunk parses and applies every line in data and returns the number
// of non-empty lines.
func (d *Driver) processChunk(ctx context.Context, data []byte, res *TickResult) int {
	text := strings.ToValidUTF8(string(data), "")
	lines := 0
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++
		res.Lines++

		ev, ok := perklog.Parse(line)
		if !ok {
			continue
		}
		res.Events++
		d.applyEvent(ctx, &ev, res)
	}
	return lines
}

func (d *Driver) applyEvent(ctx context.Context, ev *perklog.Event, res *TickResult) {
	kind := ev.Kind.String()
	if !d.dedup.SeenOrRecord(ev.Key()) {
		res.Duplicates++
		metrics.RecordEvent(kind, true, false)
		return
	}

	tr, intents := d.engine.Apply(d.state, ev)
	metrics.RecordEvent(kind, false, tr.Changed)
	if tr.Changed {
		d.dirty = true
		res.Applied++
	}

	intents = d.cfg.Policy.Filter(intents)
	if len(intents) == 0 {
		return
	}
	res.Intents += len(intents)
	res.NotifyFails += d.announcer.AnnounceAll(ctx, intents)
}

func (d *Driver) setCursor(path string, offset uint64) {
	if cur, ok := d.state.Cursors[path]; ok && cur == offset {
		return
	}
	d.state.Cursors.Set(path, offset)
	d.dirty = true
}

// Flush writes the state if it has unflushed changes.
func (d *Driver) Flush(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var res TickResult
	return d.flushLocked(ctx, &res)
}

// flushLocked must be called with mu held. A failed flush leaves the state
// dirty so the next tick retries it.
func (d *Driver) flushLocked(ctx context.Context, res *TickResult) error {
	if !d.dirty || d.store == nil {
		return nil
	}
	start := time.Now()
	err := d.store.Save(context.WithoutCancel(ctx), d.state)
	metrics.RecordStateFlush(time.Since(start), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Could not save player stats")
		return fmt.Errorf("save state: %w", err)
	}
	d.dirty = false
	res.Flushed = true
	return nil
}

// publish must be called with mu held, or before the driver is shared.
func (d *Driver) publish() {
	d.snapshot.Store(d.state.Snapshot())
	metrics.TrackedPlayers.Set(float64(len(d.state.Players)))
	metrics.RecordDedup(d.dedup.Stats())
}
