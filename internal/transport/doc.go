// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package transport reads the game server's log directory.

The ingest driver opens one Session per tick through a Connector, discovers
candidate files with CandidateFolders and CandidateFiles, then reads each
file's new bytes with Size and FetchRange.

Implementations:

  - FTP: the hosted server's FTP endpoint (github.com/jlaffaye/ftp). One
    control connection per session, closed when the session ends or its
    context is cancelled.
  - Local: a directory on the local filesystem, for servers running on the
    same host and for tests.
  - Breaker wraps any Connector with a gobreaker circuit breaker so a dead
    server is not hammered every tick.

Remote paths are always slash separated.
*/
package transport
