// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/protocol"
)

// hello handles HELLO <voter-id> from an unauthenticated session. A missing
// or unusable id leaves the session unauthenticated.
func (h *SessionHandler) hello(arg string) string {
	if err := auth.ValidateVoterID(arg); err != nil {
		h.logger.Warn("rejected voter id", "error", err)
		return protocol.ErrNotAuthenticated
	}

	// A full voter table still admits the session; its VOTE will fail
	if err := h.election.RegisterVoterIfAbsent(arg); err != nil {
		if !errors.Is(err, election.ErrCapacityExceeded) {
			h.logger.Error("failed to register voter", "voter", arg, "error", err)
			return protocol.ErrUnknownCommand
		}
		h.logger.Warn("voter table full", "voter", arg)
	}

	h.voterID = arg
	h.state = StateAuthenticated
	h.logger.Info("voter authenticated", "voter", arg, "admin", auth.IsAdmin(arg, h.cfg.AdminID))

	return protocol.RespWelcome + " " + arg
}

// rehello answers HELLO on a session that already has an identity; a session
// authenticates once
func (h *SessionHandler) rehello(_ context.Context, arg string) string {
	h.logger.Warn("repeated HELLO ignored", "voter", h.voterID, "claimed", arg)
	return protocol.ErrUnknownCommand
}

// vote handles VOTE <n>, where n is the 1-based option number
func (h *SessionHandler) vote(_ context.Context, arg string) string {
	if h.election.IsClosed() {
		return protocol.ErrClosed
	}

	n, ok := parseOptionNumber(arg)
	if !ok {
		return protocol.ErrInvalidOption
	}

	// RecordVote checks closed again under the guard
	name, err := h.election.RecordVote(h.voterID, n-1)
	switch {
	case err == nil:
	case errors.Is(err, election.ErrElectionClosed):
		return protocol.ErrClosed
	case errors.Is(err, election.ErrAlreadyVoted):
		h.logger.Info("duplicate vote rejected", "voter", h.voterID)
		return protocol.ErrDuplicateVote
	case errors.Is(err, election.ErrInvalidOption):
		return protocol.ErrInvalidOption
	case errors.Is(err, election.ErrCapacityExceeded):
		h.logger.Warn("vote rejected, voter table full", "voter", h.voterID)
		return protocol.ErrCapacityExceeded
	default:
		h.logger.Error("failed to record vote", "voter", h.voterID, "error", err)
		return protocol.ErrUnknownCommand
	}

	h.logger.Info("vote recorded", "voter", h.voterID, "option", name)
	return protocol.RespVoted + " " + name
}

// parseOptionNumber accepts only ASCII digits; signs, spaces and anything
// strconv would otherwise tolerate are rejected
func parseOptionNumber(arg string) (int, bool) {
	if arg == "" {
		return 0, false
	}
	for i := 0; i < len(arg); i++ {
		if arg[i] < '0' || arg[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false
	}
	return n, true
}
