// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/models"
)

// Archived logs live in subfolders named logs_<DD-MM>.
const (
	datedFolderPrefix = "logs_"
	datedFolderLayout = "02-01"
)

// DatedFolder returns the archive folder name the server uses for t.
func DatedFolder(t time.Time) string {
	return datedFolderPrefix + t.Format(datedFolderLayout)
}

// IsDatedFolder reports whether name looks like an archive folder.
func IsDatedFolder(name string) bool {
	return strings.HasPrefix(name, datedFolderPrefix) && strings.Contains(name, "-")
}

// IsPerkLogFile reports whether name is a PerkLog file.
func IsPerkLogFile(name string) bool {
	return strings.Contains(name, "PerkLog") && strings.HasSuffix(name, ".txt")
}

// JoinPath joins a base directory and a folder name; an empty folder is the
// base directory itself.
func JoinPath(base, folder string) string {
	if folder == "" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + folder
}

// CandidateFolders returns the folders to scan this tick: the base directory
// ("") followed by the most recent archive folder.
//
// Archive folders are ranked by name, descending. When the base directory
// cannot be listed the folders for today and yesterday are guessed from now
// instead, and the error is only logged.
func CandidateFolders(ctx context.Context, fs RemoteFS, base string, now time.Time) []string {
	folders := []string{""}

	names, err := fs.ListDirectories(ctx, base)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("base", base).Msg("Could not list archive folders, guessing dated folders")
		return append(folders, DatedFolder(now), DatedFolder(now.AddDate(0, 0, -1)))
	}

	dated := make([]string, 0, len(names))
	for _, n := range names {
		if IsDatedFolder(n) {
			dated = append(dated, n)
		}
	}
	if len(dated) == 0 {
		return folders
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dated)))
	logging.Ctx(ctx).Debug().Str("folder", dated[0]).Msg("Found archive folder")
	return append(folders, dated[0])
}

// CandidateFiles lists the PerkLog files in folder under base, sorted by name.
func CandidateFiles(ctx context.Context, fs RemoteFS, base, folder string) ([]models.LogFileID, error) {
	dir := JoinPath(base, folder)
	names, err := fs.ListFiles(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	ids := make([]models.LogFileID, 0, len(names))
	for _, n := range names {
		if IsPerkLogFile(n) {
			ids = append(ids, models.LogFileID{Folder: folder, Name: n})
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Name < ids[j].Name })
	return ids, nil
}
