// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles voter identifiers and administrator checks.

# Trust Model

The protocol trusts the identifier a client sends in HELLO. There is no
credential: any connection may bind any identifier, including the
administrator's. auth only enforces the shape of an identifier.

# Voter Identifiers

ValidateVoterID rejects identifiers that are:

  - empty
  - longer than models.MaxVoterIDLength bytes
  - carrying control characters or invalid UTF-8

Oversize identifiers are rejected, never truncated.

# Administrator

IsAdmin compares a bound identifier against the configured administrator
identifier (default "ADMIN") in constant time:

	if !auth.IsAdmin(session.VoterID(), cfg.AdminID) {
		// ERR NOT_AUTHORIZED
	}

An empty administrator identifier disables ADMIN CLOSE entirely.

# Identifiers

GenerateID returns a random UUID string used for connection sessions and
final result snapshots.
*/
package auth
