// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package supervisor runs Perkwatch's long-lived services under a suture v4
supervisor tree.

	perkwatch
	├── ingest-layer
	│   ├── ingest (PerkLog polling, leaderboard scheduling)
	│   └── state-gc (badger backend only)
	└── api-layer
	    └── api-server

Services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

A service that returns an error is restarted with backoff. On shutdown each
service gets TreeConfig.ShutdownTimeout to return; the ingest service uses it
for the final state flush.

Supervisor events are logged through sutureslog, fed by the zerolog-backed
slog.Logger from logging.NewSlogLogger.
*/
package supervisor
