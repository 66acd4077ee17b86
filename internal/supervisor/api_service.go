// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/perkwatch/internal/logging"
)

// DefaultAPIShutdownTimeout bounds in-flight API requests at shutdown.
const DefaultAPIShutdownTimeout = 10 * time.Second

// APIServer is the part of *http.Server the API service drives.
type APIServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// APIService binds the read API listener and serves it until the tree stops.
// The listener is opened on every (re)start so a port conflict surfaces as a
// service failure that suture backs off on.
type APIService struct {
	server          APIServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger

	mu    sync.Mutex
	bound string
}

// NewAPIService serves server on addr ("host:port"; port 0 picks a free one).
func NewAPIService(server APIServer, addr string, shutdownTimeout time.Duration) *APIService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultAPIShutdownTimeout
	}
	return &APIService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logging.WithComponent("api"),
	}
}

// Addr returns the bound listener address, or "" while not listening.
func (s *APIService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

func (s *APIService) setBound(addr string) {
	s.mu.Lock()
	s.bound = addr
	s.mu.Unlock()
}

// Serve implements suture.Service.
func (s *APIService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("api listen %s: %w", s.addr, err)
	}
	s.setBound(ln.Addr().String())
	defer s.setBound("")

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("API listening")
	started := time.Now()

	errCh := make(chan error, 1)
	go func() {
		err := s.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err == nil {
			err = errors.New("api server exited")
		}
		s.logger.Error().Err(err).Msg("API server stopped unexpectedly")
		return fmt.Errorf("api serve: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("API shutdown incomplete")
			return fmt.Errorf("api shutdown: %w", err)
		}
		<-errCh
		s.logger.Info().Dur("uptime", time.Since(started)).Msg("API stopped")
		return ctx.Err()
	}
}

func (s *APIService) String() string {
	return "api-server"
}
