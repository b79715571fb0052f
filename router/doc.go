// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the read-only status API.

# Route Registration

	mux := router.NewRouter(e, store)

store may be nil when no database is configured.

# Endpoints

	GET /health          - Liveness, plain "OK"
	GET /options         - Option names in ballot order
	GET /results         - Live counts, or the final snapshot once closed
	GET /snapshots/{id}  - A persisted final snapshot

Voting itself happens only over the TCP protocol; nothing here mutates the
election.
*/
package router
