// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
)

// fakeService runs until canceled, after failing the first fails starts.
type fakeService struct {
	name   string
	fails  int32
	starts atomic.Int32
}

func (f *fakeService) Serve(ctx context.Context) error {
	if n := f.starts.Add(1); n <= f.fails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeService) String() string { return f.name }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPIServer accepts nothing and blocks in Serve until Shutdown, which
// closes the listener.
type fakeAPIServer struct {
	serveErr    error
	shutdownErr error
	started     chan string
	stop        chan struct{}
	shutdowns   atomic.Int32
	ln          net.Listener
}

func newFakeAPIServer() *fakeAPIServer {
	return &fakeAPIServer{started: make(chan string, 1), stop: make(chan struct{})}
}

func (f *fakeAPIServer) Serve(ln net.Listener) error {
	f.ln = ln
	select {
	case f.started <- ln.Addr().String():
	default:
	}
	if f.serveErr != nil {
		ln.Close()
		return f.serveErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeAPIServer) Shutdown(context.Context) error {
	if f.shutdowns.Add(1) == 1 {
		f.ln.Close()
		close(f.stop)
	}
	return f.shutdownErr
}
