// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/protocol"
	"github.com/danielhkuo/quickly-vote/tally"
)

// list handles LIST
func (h *SessionHandler) list(_ context.Context, _ string) string {
	return tally.FormatOptionsList(h.election.OptionNames())
}

// score handles SCORE. Counts and the closed flag come from one read.
func (h *SessionHandler) score(_ context.Context, _ string) string {
	options, closed := h.election.Score()
	return tally.FormatScore(options, closed)
}

// admin handles ADMIN CLOSE. Only the configured admin id may close.
func (h *SessionHandler) admin(ctx context.Context, arg string) string {
	if arg != protocol.ArgClose {
		return protocol.ErrUnknownCommand
	}

	if !auth.IsAdmin(h.voterID, h.cfg.AdminID) {
		h.logger.Warn("close denied", "voter", h.voterID)
		return protocol.ErrNotAuthorized
	}

	first, snap, err := h.election.Close(ctx)
	if err != nil {
		// The election is closed in memory either way; the client still
		// gets its confirmation
		h.logger.Error("failed to publish final results", "snapshot", snap.ID, "error", err)
	}

	if first {
		h.logger.Info("election closed",
			"voter", h.voterID,
			"snapshot", snap.ID,
			"total_votes", snap.TotalVotes,
			"registered_voters", snap.RegisteredVoters,
		)
		if err == nil {
			h.logger.Info("final results published", "snapshot", snap.ID)
		}
	} else {
		h.logger.Info("election already closed", "voter", h.voterID, "snapshot", snap.ID)
	}

	return protocol.RespElectionClosed
}

// bye handles BYE and ends the session
func (h *SessionHandler) bye(_ context.Context, _ string) string {
	h.state = StateClosedByClient
	return protocol.RespBye
}
