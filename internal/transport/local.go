// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local reads logs from a directory on this host. Paths are used as given,
// so the configured base path is a local directory.
type Local struct{}

// NewLocal creates a local-filesystem connector.
func NewLocal() *Local {
	return &Local{}
}

// Connect implements Connector. Local sessions hold no resources.
func (l *Local) Connect(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return localSession{}, nil
}

type localSession struct{}

func (localSession) ListDirectories(ctx context.Context, dir string) ([]string, error) {
	return readDir(ctx, dir, true)
}

func (localSession) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return readDir(ctx, dir, false)
}

func (localSession) Size(ctx context.Context, name string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := os.Stat(filepath.FromSlash(name))
	if err != nil {
		return 0, wrapLocal("stat", name, err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("stat %s: is a directory", name)
	}
	return uint64(info.Size()), nil
}

func (localSession) FetchRange(ctx context.Context, name string, from uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.FromSlash(name))
	if err != nil {
		return nil, wrapLocal("open", name, err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(from), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s to %d: %w", name, from, err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (localSession) Close() error { return nil }

func readDir(ctx context.Context, dir string, dirs bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return nil, wrapLocal("list", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() == dirs {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func wrapLocal(op, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", op, name, ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, name, err)
}
