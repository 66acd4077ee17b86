// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package models

import (
	"sort"
	"strings"
)

// LogFileID identifies one remote append-only log file.
type LogFileID struct {
	// Folder is the dated subfolder name, empty for the base directory.
	Folder string

	// Name is the file name within Folder.
	Name string
}

// Path returns the full remote path of the file under base. It is the key
// used for the file's cursor in the persisted document.
func (id LogFileID) Path(base string) string {
	base = strings.TrimSuffix(base, "/")
	if id.Folder == "" {
		return base + "/" + id.Name
	}
	return base + "/" + id.Folder + "/" + id.Name
}

// CursorMap holds the last-consumed byte offset per full remote path.
type CursorMap map[string]uint64

// Get returns the stored offset, or zero for a file never seen before.
func (c CursorMap) Get(filePath string) uint64 {
	return c[filePath]
}

// Set records a new offset for filePath.
func (c CursorMap) Set(filePath string, offset uint64) {
	c[filePath] = offset
}

// SystemState is the complete persisted state of the tracker.
//
// It is owned by the ingest driver; only the driver mutates it and only
// between ticks does anything else read it (through Snapshot).
type SystemState struct {
	Players map[string]*PlayerRecord `json:"player_stats"`
	Cursors CursorMap                `json:"file_positions"`
}

// NewSystemState returns an empty state.
func NewSystemState() *SystemState {
	return &SystemState{
		Players: make(map[string]*PlayerRecord),
		Cursors: make(CursorMap),
	}
}

// Normalize fills nil maps so a freshly decoded document is safe to mutate.
func (s *SystemState) Normalize() {
	if s.Players == nil {
		s.Players = make(map[string]*PlayerRecord)
	}
	if s.Cursors == nil {
		s.Cursors = make(CursorMap)
	}
	for name, p := range s.Players {
		if p == nil {
			delete(s.Players, name)
			continue
		}
		p.normalize()
	}
}

// Player returns the record for username, or nil.
func (s *SystemState) Player(username string) *PlayerRecord {
	return s.Players[username]
}

// Usernames returns all tracked usernames in sorted order.
func (s *SystemState) Usernames() []string {
	names := make([]string, 0, len(s.Players))
	for name := range s.Players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a deep copy that can be read concurrently with further
// mutation of s.
func (s *SystemState) Snapshot() *SystemState {
	out := &SystemState{
		Players: make(map[string]*PlayerRecord, len(s.Players)),
		Cursors: make(CursorMap, len(s.Cursors)),
	}
	for name, p := range s.Players {
		out.Players[name] = p.Clone()
	}
	for k, v := range s.Cursors {
		out.Cursors[k] = v
	}
	return out
}
