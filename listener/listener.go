// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/handlers"
)

// Server accepts voting clients and runs one session goroutine per
// connection against a shared election.
type Server struct {
	ln       net.Listener
	election *election.Election
	cfg      cliparse.Config
	logger   *slog.Logger

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// Listen binds a TCP listener on addr, e.g. ":5000"
func Listen(addr string, e *election.Election, cfg cliparse.Config, logger *slog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return New(ln, e, cfg, logger), nil
}

func New(ln net.Listener, e *election.Election, cfg cliparse.Config, logger *slog.Logger) *Server {
	return &Server{
		ln:       ln,
		election: e,
		cfg:      cfg,
		logger:   logger,
		conns:    make(map[net.Conn]struct{}),
	}
}

func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled or Close is called, then
// waits for every session to finish. Accept errors on a live listener are
// logged and the loop continues.
func (s *Server) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	s.logger.Info("listening for voters", "addr", s.ln.Addr().String())

	var backoff time.Duration
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.isClosed() || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}

			if backoff == 0 {
				backoff = 5 * time.Millisecond
			} else {
				backoff = min(backoff*2, time.Second)
			}
			s.logger.Error("accept failed", "error", err, "retry_in", backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if !s.track(conn) {
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go s.handleConn(ctx, conn)
	}
}

// Close stops accepting and closes every open connection, which unblocks
// their reads. It is safe to call more than once.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conns := make([]net.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	err := s.ln.Close()
	for _, c := range conns {
		c.Close()
	}
	return err
}

// ActiveConnections returns the number of sessions currently running
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer s.untrack(conn)
	defer conn.Close()

	session := handlers.NewSessionHandler(s.election, s.cfg, s.logger)
	remote := conn.RemoteAddr().String()

	s.logger.Info("connection opened", "session", session.ID(), "remote", remote)

	err := session.Serve(ctx, conn)
	if err != nil && !s.isClosed() {
		s.logger.Warn("session ended with error", "session", session.ID(), "error", err)
	}

	s.logger.Info("connection closed",
		"session", session.ID(),
		"remote", remote,
		"voter", session.VoterID(),
		"state", session.State().String(),
	)
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
