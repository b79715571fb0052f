// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first, if present.

# Config Fields

  - Port: TCP listen port for the voting protocol (required)
  - HTTPPort: read-only status API port (default: 0, disabled)
  - OptionsFile: option names, one per line (default: opcoes.txt)
  - LogFile: append-only event log (default: logs/eleicao.log)
  - ResultsFile: final report (default: logs/resultado_final.txt)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: snapshot store (default: file:logs/election.db for sqlite)
  - AdminID: reserved administrator identifier (default: ADMIN)
  - MaxVoters: voter table capacity (default: 1000)

# CLI Flags

	-p            Listen port (or the first positional argument)
	-http         Status API port
	-options      Options file
	-log          Event log file
	-results      Final report file
	-d            Database URL
	-t            Database type
	-admin        Administrator voter id
	-max-voters   Voter table capacity

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	HTTP_PORT     → -http
	OPTIONS_FILE  → -options
	LOG_FILE      → -log
	RESULTS_FILE  → -results
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_ID      → -admin
	MAX_VOTERS    → -max-voters

CLI flags take precedence over environment variables.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
*/
package cliparse
