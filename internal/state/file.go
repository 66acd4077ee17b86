// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/models"
)

// FileStore keeps the state document in a single JSON file.
type FileStore struct {
	path string

	mu     sync.Mutex
	closed bool
}

// NewFileStore returns a store for the document at path. The file is not
// touched until Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document path.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (*models.SystemState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Info().Str("path", s.path).Msg("No state file found, starting with empty state")
		return models.NewSystemState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file %s: %w", s.path, err)
	}

	st, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("state file %s: %w", s.path, err)
	}
	logging.Info().
		Str("path", s.path).
		Int("players", len(st.Players)).
		Int("files", len(st.Cursors)).
		Msg("Loaded state")
	return st, nil
}

// Save implements Store. The document is written to a temporary file in the
// same directory and renamed over the old one.
func (s *FileStore) Save(ctx context.Context, state *models.SystemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
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

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
