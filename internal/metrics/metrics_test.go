// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

// histogramCount reads the sample count of a histogram.
func histogramCount(t *testing.T, h interface{ Write(*dto.Metric) error }) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestTickDurationObserved(t *testing.T) {
	before := histogramCount(t, TickDuration)
	RecordTick(5*time.Millisecond, nil)
	if got := histogramCount(t, TickDuration) - before; got != 1 {
		t.Errorf("tick duration samples delta = %d, want 1", got)
	}
}

func TestStateFlushDurationObserved(t *testing.T) {
	before := histogramCount(t, StateFlushDuration)
	RecordStateFlush(time.Millisecond, errors.New("disk full"))
	if got := histogramCount(t, StateFlushDuration) - before; got != 1 {
		t.Errorf("flush duration samples delta = %d, want 1", got)
	}
}

func TestRecordTick(t *testing.T) {
	okBefore := testutil.ToFloat64(TicksTotal.WithLabelValues("success"))
	errBefore := testutil.ToFloat64(TicksTotal.WithLabelValues("error"))

	RecordTick(10*time.Millisecond, nil)
	RecordTick(20*time.Millisecond, errors.New("list failed"))

	if got := testutil.ToFloat64(TicksTotal.WithLabelValues("success")) - okBefore; got != 1 {
		t.Errorf("success ticks delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(TicksTotal.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error ticks delta = %v, want 1", got)
	}
	if testutil.ToFloat64(TickLastSuccess) == 0 {
		t.Error("last success timestamp not set")
	}
}

func TestRecordEvent(t *testing.T) {
	parsedBefore := testutil.ToFloat64(EventsParsed.WithLabelValues("died"))
	appliedBefore := testutil.ToFloat64(EventsApplied.WithLabelValues("died"))
	dupBefore := testutil.ToFloat64(EventsDuplicate)

	RecordEvent("died", false, true)
	RecordEvent("died", true, false)
	RecordEvent("died", false, false)

	if got := testutil.ToFloat64(EventsParsed.WithLabelValues("died")) - parsedBefore; got != 3 {
		t.Errorf("parsed delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(EventsApplied.WithLabelValues("died")) - appliedBefore; got != 1 {
		t.Errorf("applied delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(EventsDuplicate) - dupBefore; got != 1 {
		t.Errorf("duplicate delta = %v, want 1", got)
	}
}

func TestRecordFetch(t *testing.T) {
	bytesBefore := testutil.ToFloat64(BytesFetched)
	linesBefore := testutil.ToFloat64(LinesRead)
	rotBefore := testutil.ToFloat64(FileRotations)

	RecordFetch(512, 4, false)
	RecordFetch(128, 1, true)

	if got := testutil.ToFloat64(BytesFetched) - bytesBefore; got != 640 {
		t.Errorf("bytes delta = %v, want 640", got)
	}
	if got := testutil.ToFloat64(LinesRead) - linesBefore; got != 5 {
		t.Errorf("lines delta = %v, want 5", got)
	}
	if got := testutil.ToFloat64(FileRotations) - rotBefore; got != 1 {
		t.Errorf("rotations delta = %v, want 1", got)
	}
}

func TestRecordDedup(t *testing.T) {
	RecordDedup(500, 137)
	if got := testutil.ToFloat64(DedupKeys); got != 500 {
		t.Errorf("DedupKeys = %v, want 500", got)
	}
	if got := testutil.ToFloat64(DedupEvicted); got != 137 {
		t.Errorf("DedupEvicted = %v, want 137", got)
	}
}

func TestRecordNotification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"sent", nil, "sent"},
		{"failed", errors.New("webhook returned 500"), "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(NotificationsTotal.WithLabelValues("death", tt.result))
			RecordNotification("death", tt.err)
			if got := testutil.ToFloat64(NotificationsTotal.WithLabelValues("death", tt.result)) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordStateFlush(t *testing.T) {
	before := testutil.ToFloat64(StateFlushes.WithLabelValues("error"))
	RecordStateFlush(time.Millisecond, errors.New("disk full"))
	if got := testutil.ToFloat64(StateFlushes.WithLabelValues("error")) - before; got != 1 {
		t.Errorf("flush error delta = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/players", "200"))
	RecordAPIRequest("GET", "/api/v1/players", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/players", "200")) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordEvent("login", false, true)
			RecordTransportError("fetch")
			RecordLeaderboard("deaths", "schedule")
		}()
	}
	wg.Wait()
}
