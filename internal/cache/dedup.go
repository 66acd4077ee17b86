// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package cache

import (
	"sync"

	"github.com/tomtom215/perkwatch/internal/perklog"
)

// DefaultDedupCapacity is the number of recent event keys remembered.
const DefaultDedupCapacity = 500

// dedupEntry is a node in the insertion-ordered list.
type dedupEntry struct {
	key  perklog.Key
	prev *dedupEntry
	next *dedupEntry
}

// Dedup is a bounded, insertion-ordered set of recently processed event keys.
//
// Lookups never reorder entries: a key seen again stays where it was first
// recorded, so the oldest recorded keys are the first to go. When the set grows
// past its capacity the overflow is trimmed in one pass and exactly the most
// recent capacity keys remain.
//
// Dedup is not persisted. After a restart the cursors are what prevent
// re-processing; the set only catches re-delivery within one process lifetime.
type Dedup struct {
	mu sync.Mutex

	capacity int
	items    map[perklog.Key]*dedupEntry

	// head.next is the newest key, tail.prev the oldest.
	head *dedupEntry
	tail *dedupEntry

	evicted int64
}

// NewDedup creates a dedup set holding at most capacity keys.
func NewDedup(capacity int) *Dedup {
	if capacity <= 0 {
		capacity = DefaultDedupCapacity
	}

	d := &Dedup{
		capacity: capacity,
		items:    make(map[perklog.Key]*dedupEntry, capacity+1),
		head:     &dedupEntry{},
		tail:     &dedupEntry{},
	}
	d.head.next = d.tail
	d.tail.prev = d.head
	return d
}

// SeenOrRecord reports whether key is novel. A novel key is recorded and true
// is returned; a key already present returns false and leaves the set as is.
func (d *Dedup) SeenOrRecord(key perklog.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.items[key]; exists {
		return false
	}

	entry := &dedupEntry{key: key}
	d.addToFront(entry)
	d.items[key] = entry

	if len(d.items) > d.capacity {
		d.trim()
	}
	return true
}

// Stats returns the number of remembered keys and how many keys have been
// evicted since the set was created.
func (d *Dedup) Stats() (size int, evicted int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items), d.evicted
}

// Internal methods (must be called with lock held)

func (d *Dedup) addToFront(entry *dedupEntry) {
	entry.prev = d.head
	entry.next = d.head.next
	d.head.next.prev = entry
	d.head.next = entry
}

// trim drops the oldest entries until the set is back at capacity.
func (d *Dedup) trim() {
	for len(d.items) > d.capacity {
		oldest := d.tail.prev
		if oldest == d.head {
			return
		}
		oldest.prev.next = d.tail
		d.tail.prev = oldest.prev
		delete(d.items, oldest.key)
		d.evicted++
	}
}
