// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Defaults for DiscordConfig.
const (
	DefaultUsername  = "Zomboid Stats Tracker"
	DefaultRateLimit = time.Second
	DefaultTimeout   = 10 * time.Second
)

// DiscordConfig configures the Discord notifier.
type DiscordConfig struct {
	WebhookURL string

	// Username overrides the webhook's display name.
	Username string

	// RateLimit is the minimum spacing between messages.
	RateLimit time.Duration

	Timeout time.Duration

	// Client replaces the default HTTP client. Tests use it.
	Client *http.Client
}

// ErrRateLimited is wrapped by Send errors for HTTP 429 responses.
var ErrRateLimited = errors.New("discord rate limited")

// RateLimitError reports a 429 and how long Discord asked us to wait.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("discord webhook returned 429, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Discord posts embeds to a Discord webhook.
type Discord struct {
	webhookURL string
	username   string
	client     *http.Client
	limiter    *rate.Limiter

	mu        sync.Mutex
	notBefore time.Time // set from Retry-After
}

// NewDiscord creates a Discord notifier. Zero config values take the package
// defaults.
func NewDiscord(cfg DiscordConfig) *Discord {
	if cfg.Username == "" {
		cfg.Username = DefaultUsername
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Discord{
		webhookURL: cfg.WebhookURL,
		username:   cfg.Username,
		client:     client,
		limiter:    rate.NewLimiter(rate.Every(cfg.RateLimit), 1),
	}
}

// Name implements Notifier.
func (d *Discord) Name() string { return "discord" }

// Send posts one embed. Any non-2xx response is an error. A 429 returns a
// *RateLimitError and holds back later sends until Retry-After has passed.
func (d *Discord) Send(ctx context.Context, embed Embed) error {
	if err := d.waitRetryAfter(ctx); err != nil {
		return fmt.Errorf("discord retry-after wait: %w", err)
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("discord rate limit wait: %w", err)
	}

	body, err := json.Marshal(webhookPayload{Username: d.username, Embeds: []Embed{embed}})
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create Discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Discord webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		d.mu.Lock()
		if until := time.Now().Add(retryAfter); until.After(d.notBefore) {
			d.notBefore = until
		}
		d.mu.Unlock()
		return &RateLimitError{RetryAfter: retryAfter}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (d *Discord) waitRetryAfter(ctx context.Context) error {
	d.mu.Lock()
	wait := time.Until(d.notBefore)
	d.mu.Unlock()
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// parseRetryAfter reads Discord's Retry-After header, in seconds with an
// optional fraction. Missing or malformed values mean one second.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || secs <= 0 {
		return time.Second
	}
	return time.Duration(secs * float64(time.Second))
}
