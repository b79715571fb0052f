// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote election server.

Quickly Vote runs one plurality election over a line-based TCP protocol.
Clients identify with HELLO, list the ballot, cast one vote, and watch the
running score; a reserved administrator id closes the election, which freezes
the counts and publishes the final results.

# Starting the Server

	go run . 5000

Or with flags:

	go run . -p 5000 -options opcoes.txt -admin ADMIN -http 8080

# Configuration

Required settings:

  - PORT (-p, or first positional argument): TCP listen port

Optional settings:

  - OPTIONS_FILE (-options): ballot, one name per line (default: opcoes.txt)
  - LOG_FILE (-log): append-only event log (default: logs/eleicao.log)
  - RESULTS_FILE (-results): final report (default: logs/resultado_final.txt)
  - ADMIN_ID (-admin): administrator voter id (default: ADMIN)
  - MAX_VOTERS (-max-voters): voter table capacity (default: 1000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): snapshot database (default: file:logs/election.db)
  - HTTP_PORT (-http): read-only status API port (0 or unset disables)

A .env file in the working directory is loaded first; real environment
variables take precedence.

# Architecture

  - election: the shared election state and its single guard
  - handlers: per-connection protocol sessions and status API handlers
  - listener: TCP accept loop, one goroutine per connection
  - protocol: frame reading, parsing, response tags
  - tally: score lines, percentages, final report
  - db: final snapshot persistence (SQLite or PostgreSQL)
  - eventlog: structured append-only log
  - router, middleware: the status API
  - auth: voter id validation and administrator check
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
