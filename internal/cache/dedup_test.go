// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package cache

import (
	"fmt"
	"testing"

	"github.com/tomtom215/perkwatch/internal/perklog"
)

func key(i int) perklog.Key {
	return perklog.Key{Username: "Bob", Label: "Died", Timestamp: fmt.Sprintf("12:00:%04d", i)}
}

// has reports whether k is still remembered.
func has(d *Dedup, k perklog.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.items[k]
	return ok
}

func size(d *Dedup) int {
	n, _ := d.Stats()
	return n
}

func TestDedup_SeenOrRecord(t *testing.T) {
	t.Parallel()

	d := NewDedup(10)
	k := key(1)

	if !d.SeenOrRecord(k) {
		t.Fatal("first sighting should be novel")
	}
	if d.SeenOrRecord(k) {
		t.Fatal("second sighting should be a duplicate")
	}
	if n, evicted := d.Stats(); n != 1 || evicted != 0 {
		t.Errorf("Stats = (%d, %d), want (1, 0)", n, evicted)
	}
}

func TestDedup_DistinctFieldsAreDistinctKeys(t *testing.T) {
	t.Parallel()

	d := NewDedup(10)
	keys := []perklog.Key{
		{Username: "Bob", Label: "Died", Timestamp: "12:00:00"},
		{Username: "Alice", Label: "Died", Timestamp: "12:00:00"},
		{Username: "Bob", Label: "Login", Timestamp: "12:00:00"},
		{Username: "Bob", Label: "Died", Timestamp: "12:00:01"},
	}
	for _, k := range keys {
		if !d.SeenOrRecord(k) {
			t.Errorf("key %v should be novel", k)
		}
	}
}

func TestDedup_TrimKeepsMostRecent(t *testing.T) {
	t.Parallel()

	d := NewDedup(DefaultDedupCapacity)
	const total = DefaultDedupCapacity + 137

	for i := 0; i < total; i++ {
		if !d.SeenOrRecord(key(i)) {
			t.Fatalf("key %d unexpectedly seen", i)
		}
		if size(d) > DefaultDedupCapacity {
			t.Fatalf("size %d exceeds capacity after insert %d", size(d), i)
		}
	}

	if size(d) != DefaultDedupCapacity {
		t.Fatalf("size = %d, want %d", size(d), DefaultDedupCapacity)
	}
	for i := 0; i < total-DefaultDedupCapacity; i++ {
		if has(d, key(i)) {
			t.Errorf("old key %d should have been trimmed", i)
		}
	}
	for i := total - DefaultDedupCapacity; i < total; i++ {
		if !has(d, key(i)) {
			t.Errorf("recent key %d should be retained", i)
		}
	}

	if _, evicted := d.Stats(); evicted != total-DefaultDedupCapacity {
		t.Errorf("evicted = %d, want %d", evicted, total-DefaultDedupCapacity)
	}
}

func TestDedup_DuplicateDoesNotRefreshPosition(t *testing.T) {
	t.Parallel()

	d := NewDedup(3)
	d.SeenOrRecord(key(1))
	d.SeenOrRecord(key(2))
	d.SeenOrRecord(key(3))

	// A repeat sighting of the oldest key must not protect it from trimming.
	d.SeenOrRecord(key(1))
	d.SeenOrRecord(key(4))

	if has(d, key(1)) {
		t.Error("key 1 should have been trimmed")
	}
	for _, i := range []int{2, 3, 4} {
		if !has(d, key(i)) {
			t.Errorf("key %d should be retained", i)
		}
	}
}

func TestNewDedup_DefaultCapacity(t *testing.T) {
	t.Parallel()

	d := NewDedup(0)
	if d.capacity != DefaultDedupCapacity {
		t.Errorf("capacity = %d, want %d", d.capacity, DefaultDedupCapacity)
	}
}
