// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package logging

import "net/url"

// RedactSecret masks a password or token, keeping only whether it is set.
func RedactSecret(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

// RedactURL keeps the scheme, host and first path segment of a URL and masks
// the rest. Discord webhook URLs carry their token in the path.
//
// Example: "https://discord.com/api/webhooks/123/abc" -> "https://discord.com/api/***"
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	out := u.Scheme + "://" + u.Host
	path := u.EscapedPath()
	if len(path) > 1 {
		first := path[1:]
		for i := 0; i < len(first); i++ {
			if first[i] == '/' {
				first = first[:i]
				break
			}
		}
		out += "/" + first
	}
	return out + "/***"
}
