// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/perkwatch/internal/models"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("state store closed")

// Store loads and saves the complete SystemState document.
type Store interface {
	// Load returns the persisted state, or an empty state when nothing has
	// been saved yet.
	Load(ctx context.Context) (*models.SystemState, error)

	// Save overwrites the persisted document with state.
	Save(ctx context.Context, state *models.SystemState) error

	// Close releases the store's resources.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
)

// Open creates the store for backend rooted at path. For BackendFile path is
// the document file; for BackendBadger it is the database directory.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendBadger:
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown state backend %q", backend)
	}
}

// encode renders state as the persisted document.
func encode(state *models.SystemState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// decode parses a persisted document. Legacy and hand-edited documents are
// normalized so the result is always safe to mutate.
func decode(data []byte) (*models.SystemState, error) {
	st := models.NewSystemState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	st.Normalize()
	return st, nil
}
