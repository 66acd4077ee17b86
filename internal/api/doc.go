// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package api serves a read-only HTTP view of the tracked players.

Routes:

	GET /health                        liveness and player count
	GET /metrics                       Prometheus metrics
	GET /api/v1/players                ?limit=&offset=
	GET /api/v1/players/{name}         full player record
	GET /api/v1/leaderboards/{kind}    deaths, survival, hours, skill:<Name>; ?limit=

Handlers read the snapshot the ingest driver publishes after every tick, so a
request never blocks a tick and never sees a half-applied event. Responses use
the models.APIResponse envelope.

The /api/v1 group is rate limited per client IP with go-chi/httprate and
counted in the http_requests_total and http_request_duration_seconds metrics.
*/
package api
