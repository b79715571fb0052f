// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/protocol"
)

// State is the position of a session in the protocol state machine
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
	StateClosedByClient
	StateClosedByPeer
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "UNAUTHENTICATED"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateClosedByClient:
		return "CLOSED_BY_CLIENT"
	case StateClosedByPeer:
		return "CLOSED_BY_PEER"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether the session has ended
func (s State) Terminal() bool {
	return s == StateClosedByClient || s == StateClosedByPeer
}

// SessionHandler runs the protocol for one connection. Its fields are private
// to that connection; the only shared state it touches is the election.
type SessionHandler struct {
	id       string
	election *election.Election
	cfg      cliparse.Config
	logger   *slog.Logger

	state   State
	voterID string
}

func NewSessionHandler(e *election.Election, cfg cliparse.Config, logger *slog.Logger) *SessionHandler {
	id := auth.GenerateID()
	return &SessionHandler{
		id:       id,
		election: e,
		cfg:      cfg,
		logger:   logger.With("session", id),
		state:    StateUnauthenticated,
	}
}

func (h *SessionHandler) ID() string      { return h.id }
func (h *SessionHandler) State() State    { return h.state }
func (h *SessionHandler) VoterID() string { return h.voterID }

// Serve reads frames from rw and writes one response per frame until the
// client sends BYE or the connection fails. A clean EOF returns nil.
func (h *SessionHandler) Serve(ctx context.Context, rw io.ReadWriter) error {
	lr := protocol.NewLineReader(rw)

	for {
		line, err := lr.ReadLine()
		if errors.Is(err, protocol.ErrFrameSize) {
			h.logger.Warn("frame rejected", "voter", h.voterLabel(), "error", err)
			if err := protocol.WriteLine(rw, protocol.ErrLineTooLong); err != nil {
				h.state = StateClosedByPeer
				return fmt.Errorf("write failed: %w", err)
			}
			continue
		}
		if err != nil {
			h.state = StateClosedByPeer
			h.logger.Info("client disconnected", "voter", h.voterLabel())
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}

		resp := h.Handle(ctx, line)
		if err := protocol.WriteLine(rw, resp); err != nil {
			h.state = StateClosedByPeer
			return fmt.Errorf("write failed: %w", err)
		}

		if h.state == StateClosedByClient {
			h.logger.Info("client ended session", "voter", h.voterLabel())
			return nil
		}
	}
}

// Handle runs one frame through the state machine and returns the response
// line. Every outcome, including malformed input, is a response; Handle never
// fails the session.
func (h *SessionHandler) Handle(ctx context.Context, line string) string {
	h.logger.Info("command received", "voter", h.voterLabel(), "line", line)

	cmd, err := protocol.ParseLine(line)
	switch {
	case errors.Is(err, protocol.ErrFrameSize):
		return protocol.ErrLineTooLong
	case err != nil:
		if h.state == StateUnauthenticated {
			return protocol.ErrNotAuthenticated
		}
		return protocol.ErrUnknownCommand
	}

	switch h.state {
	case StateUnauthenticated:
		if cmd.Verb == protocol.CmdHello {
			return h.hello(cmd.Arg)
		}
		return protocol.ErrNotAuthenticated

	case StateAuthenticated:
		fn, ok := commands[cmd.Verb]
		if !ok {
			return protocol.ErrUnknownCommand
		}
		return fn(h, ctx, cmd.Arg)

	default:
		// Terminal states never see another frame from Serve
		return protocol.ErrUnknownCommand
	}
}

type commandFunc func(h *SessionHandler, ctx context.Context, arg string) string

// commands is the dispatch table for authenticated sessions; verbs are
// matched case-sensitively
var commands = map[string]commandFunc{
	protocol.CmdHello: (*SessionHandler).rehello,
	protocol.CmdList:  noArg((*SessionHandler).list),
	protocol.CmdVote:  (*SessionHandler).vote,
	protocol.CmdScore: noArg((*SessionHandler).score),
	protocol.CmdAdmin: (*SessionHandler).admin,
	protocol.CmdBye:   noArg((*SessionHandler).bye),
}

// noArg rejects trailing text on commands that take no argument
func noArg(fn commandFunc) commandFunc {
	return func(h *SessionHandler, ctx context.Context, arg string) string {
		if arg != "" {
			return protocol.ErrUnknownCommand
		}
		return fn(h, ctx, arg)
	}
}

func (h *SessionHandler) voterLabel() string {
	if h.state == StateUnauthenticated || h.voterID == "" {
		return "unauthenticated"
	}
	return h.voterID
}
