// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/models"
)

// documentKey is the single key holding the state document.
var documentKey = []byte("perkwatch:state")

// closeTimeout bounds how long Close waits for BadgerDB.
const closeTimeout = 30 * time.Second

// BadgerStore keeps the state document in an embedded BadgerDB.
type BadgerStore struct {
	db   *badger.DB
	path string

	mu     sync.RWMutex
	closed bool
}

// OpenBadgerStore opens (or creates) the database in dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.SyncWrites = true
	opts.Compression = options.Snappy
	// The document is small; keep the memory footprint small too.
	opts.MemTableSize = 8 << 20
	opts.ValueLogFileSize = 16 << 20
	opts.NumCompactors = 2

	// Reduce logging verbosity
	opts.Logger = nil

	return openBadger(opts, dir)
}

// OpenInMemoryBadgerStore opens a BadgerStore that never touches disk.
func OpenInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, "")
}

func openBadger(opts badger.Options, dir string) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}
	logging.Info().Str("path", dir).Msg("Badger state store opened")
	return &BadgerStore{db: db, path: dir}, nil
}

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context) (*models.SystemState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(documentKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		logging.Info().Str("path", s.path).Msg("No state document found, starting with empty state")
		return models.NewSystemState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state document: %w", err)
	}
	return decode(data)
}

// Save implements Store.
func (s *BadgerStore) Save(ctx context.Context, state *models.SystemState) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(state)
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(documentKey, data))
	}); err != nil {
		return fmt.Errorf("write state document: %w", err)
	}
	return nil
}

// RunGC reclaims value log space left behind by overwritten documents.
func (s *BadgerStore) RunGC() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close implements Store. It gives up after a timeout rather than hang
// shutdown.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		logging.Info().Msg("Badger state store closed")
		return nil
	case <-time.After(closeTimeout):
		logging.Warn().Dur("timeout", closeTimeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", closeTimeout)
	}
}
