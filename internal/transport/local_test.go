// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLocal(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "logs_10-04"), 0o755); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(root, "PerkLog.txt")
	if err := os.WriteFile(logPath, []byte("line one\nline two\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	sess, err := NewLocal().Connect(ctx)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer sess.Close()

	base := filepath.ToSlash(root)

	dirs, err := sess.ListDirectories(ctx, base)
	if err != nil || !reflect.DeepEqual(dirs, []string{"logs_10-04"}) {
		t.Errorf("ListDirectories = %v, %v", dirs, err)
	}
	files, err := sess.ListFiles(ctx, base)
	if err != nil || !reflect.DeepEqual(files, []string{"PerkLog.txt"}) {
		t.Errorf("ListFiles = %v, %v", files, err)
	}

	size, err := sess.Size(ctx, base+"/PerkLog.txt")
	if err != nil || size != 18 {
		t.Errorf("Size = %d, %v", size, err)
	}

	data, err := sess.FetchRange(ctx, base+"/PerkLog.txt", 9)
	if err != nil || string(data) != "line two\n" {
		t.Errorf("FetchRange = %q, %v", data, err)
	}

	if _, err := sess.Size(ctx, base+"/missing.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Size(missing) = %v, want ErrNotFound", err)
	}
}

func TestLocal_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocal().Connect(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Connect = %v, want context.Canceled", err)
	}
}
