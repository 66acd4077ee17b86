// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/tomtom215/perkwatch/internal/logging"
)

// FTPConfig holds the FTP endpoint settings.
type FTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string

	// Timeout bounds dialing and every command on the connection.
	Timeout time.Duration
}

// FTP connects to the game server's FTP endpoint.
type FTP struct {
	cfg FTPConfig
}

// NewFTP creates an FTP connector.
func NewFTP(cfg FTPConfig) *FTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &FTP{cfg: cfg}
}

// Address returns host:port.
func (f *FTP) Address() string {
	return net.JoinHostPort(f.cfg.Host, strconv.Itoa(f.cfg.Port))
}

// Connect implements Connector. The connection is closed when the returned
// session is closed or ctx is cancelled, whichever comes first.
func (f *FTP) Connect(ctx context.Context) (Session, error) {
	conn, err := ftp.Dial(f.Address(),
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(f.cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", f.Address(), err)
	}
	if err := conn.Login(f.cfg.User, f.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}

	s := &ftpSession{conn: conn}
	s.stop = context.AfterFunc(ctx, func() {
		// Unblocks any command in flight.
		_ = s.quit()
	})
	return s, nil
}

type ftpSession struct {
	conn *ftp.ServerConn
	stop func() bool

	closeOnce sync.Once
	closeErr  error
}

func (s *ftpSession) ListDirectories(ctx context.Context, dir string) ([]string, error) {
	return s.list(ctx, dir, ftp.EntryTypeFolder)
}

func (s *ftpSession) ListFiles(ctx context.Context, dir string) ([]string, error) {
	return s.list(ctx, dir, ftp.EntryTypeFile)
}

// list uses LIST and falls back to NLST for servers whose LIST output the
// client cannot parse. NLST carries no entry types, so the fallback returns
// every name and leaves filtering to the caller.
func (s *ftpSession) list(ctx context.Context, dir string, want ftp.EntryType) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.conn.List(dir)
	if err == nil {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Type == want && e.Name != "." && e.Name != ".." {
				names = append(names, e.Name)
			}
		}
		return names, nil
	}
	if isNotFound(err) {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
	}

	logging.Ctx(ctx).Debug().Err(err).Str("dir", dir).Msg("LIST failed, falling back to NLST")
	names, nerr := s.conn.NameList(dir)
	if nerr != nil {
		return nil, fmt.Errorf("ftp list %s: %w", dir, errors.Join(err, nerr))
	}
	for i, n := range names {
		names[i] = path.Base(n)
	}
	return names, nil
}

func (s *ftpSession) Size(ctx context.Context, file string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size, err := s.conn.FileSize(file)
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("%s: %w", file, ErrNotFound)
		}
		return 0, fmt.Errorf("ftp size %s: %w", file, err)
	}
	if size < 0 {
		return 0, fmt.Errorf("ftp size %s: negative size %d", file, size)
	}
	return uint64(size), nil
}

func (s *ftpSession) FetchRange(ctx context.Context, file string, from uint64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := s.conn.RetrFrom(file, from)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s: %w", file, ErrNotFound)
		}
		return nil, fmt.Errorf("ftp retr %s from %d: %w", file, from, err)
	}
	data, readErr := io.ReadAll(resp)
	closeErr := resp.Close()
	if readErr != nil {
		return nil, fmt.Errorf("ftp read %s: %w", file, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", file, closeErr)
	}
	return data, nil
}

func (s *ftpSession) Close() error {
	s.stop()
	return s.quit()
}

func (s *ftpSession) quit() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Quit()
	})
	return s.closeErr
}

// isNotFound reports an FTP 550 reply.
func isNotFound(err error) bool {
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code == ftp.StatusFileUnavailable
}
