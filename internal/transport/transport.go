// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a remote path does not exist.
var ErrNotFound = errors.New("remote path not found")

// RemoteFS is read access to the log directory tree.
type RemoteFS interface {
	// ListDirectories returns the names of the subdirectories of dir.
	ListDirectories(ctx context.Context, dir string) ([]string, error)

	// ListFiles returns the names of the regular files in dir.
	ListFiles(ctx context.Context, dir string) ([]string, error)

	// Size returns the current size of the file at path in bytes.
	Size(ctx context.Context, path string) (uint64, error)

	// FetchRange returns the bytes of path from offset from to the end of
	// the file.
	FetchRange(ctx context.Context, path string, from uint64) ([]byte, error)
}

// Session is a RemoteFS bound to one connection.
type Session interface {
	RemoteFS

	// Close ends the session. It is safe to call more than once.
	Close() error
}

// Connector opens sessions. The ingest driver opens one per tick.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}
