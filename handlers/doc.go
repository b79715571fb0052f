// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the voting protocol for one client connection and
the HTTP handlers of the status API.

# Sessions

A SessionHandler owns one connection. Serve reads newline-terminated frames
and writes exactly one response line per frame:

	h := handlers.NewSessionHandler(e, cfg, logger)
	err := h.Serve(ctx, conn)

Handle runs a single frame through the state machine without any I/O, which
is what the tests drive directly.

# States

	UNAUTHENTICATED --HELLO <id>--> AUTHENTICATED --BYE--> CLOSED_BY_CLIENT
	any state --EOF or I/O error--> CLOSED_BY_PEER

Before HELLO every other command is answered with ERR NOT_AUTHENTICATED.

# Commands

	HELLO <id>    WELCOME <id>
	LIST          OPTIONS <n>|<name1>|...
	VOTE <n>      OK VOTED <name>     (n is 1-based)
	SCORE         SCORE <n>|<name>:<votes>|...   or CLOSED FINAL ... once closed
	ADMIN CLOSE   OK ELECTION_CLOSED  (admin id only)
	BYE           BYE

Failures are ERR lines (DUPLICATE_VOTE, INVALID_OPTION, ELECTION_CLOSED,
NOT_AUTHENTICATED, NOT_AUTHORIZED, UNKNOWN_COMMAND, CAPACITY_EXCEEDED,
LINE_TOO_LONG). None of them end the session. A HELLO without a usable id is
answered like any other pre-authentication frame, and a second HELLO is an
unknown command.

# Status API

ResultsHandler serves GET /options, GET /results and GET /snapshots/{id}
from the same election the sessions use.
*/
package handlers
