// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// MemFS is an in-memory Connector and Session for tests. Directories exist
// implicitly as prefixes of file paths or explicitly through Mkdir.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	// Fail injects errors per operation and path, keyed "op:path" where op
	// is list, size or fetch.
	fail map[string]error

	connectErr error
	connects   int
}

// NewMemFS returns an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		fail:  make(map[string]error),
	}
}

// Mkdir creates an empty directory.
func (m *MemFS) Mkdir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path.Clean(dir)] = true
}

// Write replaces the content of a file.
func (m *MemFS) Write(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path.Clean(name)] = append([]byte(nil), data...)
}

// Append appends to a file, creating it if needed.
func (m *MemFS) Append(name, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.files[name] = append(m.files[name], data...)
}

// FailOn makes op on p return err until cleared with a nil err.
func (m *MemFS) FailOn(op, p string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := op + ":" + path.Clean(p)
	if err == nil {
		delete(m.fail, key)
		return
	}
	m.fail[key] = err
}

// FailConnect makes Connect return err; nil clears it.
func (m *MemFS) FailConnect(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectErr = err
}

// Connects returns the number of successful Connect calls.
func (m *MemFS) Connects() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects
}

// Connect implements Connector.
func (m *MemFS) Connect(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	m.connects++
	return m, nil
}

// Close implements Session.
func (m *MemFS) Close() error { return nil }

// ListDirectories implements RemoteFS.
func (m *MemFS) ListDirectories(ctx context.Context, dir string) ([]string, error) {
	return m.list(ctx, dir, true)
}

// ListFiles implements RemoteFS.
func (m *MemFS) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return m.list(ctx, dir, false)
}

func (m *MemFS) list(ctx context.Context, dir string, dirs bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = path.Clean(dir)
	if err := m.fail["list:"+dir]; err != nil {
		return nil, err
	}

	prefix := strings.TrimSuffix(dir, "/") + "/"
	seen := make(map[string]bool)
	found := m.dirs[dir]

	add := func(p string, isFile bool) {
		if !strings.HasPrefix(p, prefix) {
			return
		}
		found = true
		rest := strings.TrimPrefix(p, prefix)
		child, _, nested := strings.Cut(rest, "/")
		if child == "" {
			return
		}
		if nested || !isFile {
			if dirs {
				seen[child] = true
			}
			return
		}
		if !dirs {
			seen[child] = true
		}
	}
	for p := range m.files {
		add(p, true)
	}
	for p := range m.dirs {
		add(p, false)
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Size implements RemoteFS.
func (m *MemFS) Size(ctx context.Context, name string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)
	if err := m.fail["size:"+name]; err != nil {
		return 0, err
	}
	data, ok := m.files[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return uint64(len(data)), nil
}

// FetchRange implements RemoteFS.
func (m *MemFS) FetchRange(ctx context.Context, name string, from uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	name = path.Clean(name)
	if err := m.fail["fetch:"+name]; err != nil {
		return nil, err
	}
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if from >= uint64(len(data)) {
		return []byte{}, nil
	}
	return append([]byte(nil), data[from:]...), nil
}
