// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestNewDiscord_Defaults(t *testing.T) {
	t.Parallel()

	d := NewDiscord(DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/test"})
	if d.Name() != "discord" {
		t.Errorf("Name = %q", d.Name())
	}
	if d.username != DefaultUsername {
		t.Errorf("username = %q", d.username)
	}
	if d.client.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v", d.client.Timeout)
	}
}

func TestDiscord_Send(t *testing.T) {
	t.Parallel()

	var got webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	d := NewDiscord(DiscordConfig{WebhookURL: server.URL, RateLimit: time.Millisecond})
	embed := Embed{Title: "hello", Color: 0xFFD700, Footer: &EmbedFooter{Text: "f"}}
	if err := d.Send(context.Background(), embed); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.Username != DefaultUsername {
		t.Errorf("username = %q", got.Username)
	}
	if len(got.Embeds) != 1 || got.Embeds[0].Title != "hello" || got.Embeds[0].Footer.Text != "f" {
		t.Errorf("embeds = %+v", got.Embeds)
	}
}

func TestDiscord_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusNoContent, false},
		{http.StatusBadRequest, true},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
		}))
		d := NewDiscord(DiscordConfig{WebhookURL: server.URL, RateLimit: time.Millisecond})
		err := d.Send(context.Background(), Embed{Title: "x"})
		if (err != nil) != tt.wantErr {
			t.Errorf("status %d: err = %v, wantErr %v", tt.status, err, tt.wantErr)
		}
		server.Close()
	}
}

func TestDiscord_RetryAfterHoldsBackNextSend(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0.2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	d := NewDiscord(DiscordConfig{WebhookURL: server.URL, RateLimit: time.Millisecond})

	err := d.Send(context.Background(), Embed{Title: "first"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("first Send = %v, want ErrRateLimited", err)
	}
	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) || rlErr.RetryAfter != 200*time.Millisecond {
		t.Fatalf("RetryAfter = %+v, want 200ms", rlErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := d.Send(ctx, Embed{Title: "too soon"}); err == nil {
		t.Error("Send inside the Retry-After window should wait and time out")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 while held back", calls.Load())
	}

	start := time.Now()
	if err := d.Send(context.Background(), Embed{Title: "later"}); err != nil {
		t.Fatalf("Send after Retry-After: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if time.Since(start) > 300*time.Millisecond {
		t.Errorf("waited %v, longer than the Retry-After window", time.Since(start))
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   time.Duration
	}{
		{"2", 2 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"", time.Second},
		{"soon", time.Second},
		{"-3", time.Second},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.header); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestDiscord_RateLimitHonorsContext(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	d := NewDiscord(DiscordConfig{WebhookURL: server.URL, RateLimit: time.Hour})
	if err := d.Send(context.Background(), Embed{Title: "first"}); err != nil {
		t.Fatalf("first Send: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Send(ctx, Embed{Title: "second"}); err == nil {
		t.Error("second Send should fail while rate limited")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestDiscord_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	d := NewDiscord(DiscordConfig{WebhookURL: url, RateLimit: time.Millisecond, Timeout: time.Second})
	if err := d.Send(context.Background(), Embed{Title: "x"}); err == nil {
		t.Error("expected error for closed server")
	}
}
