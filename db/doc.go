// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the final result snapshot of an election.

# Drivers

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres"
(github.com/lib/pq). For SQLite the parent directory of the database file is
created on demand.

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - result_snapshot: one row per close (timestamps in Unix milliseconds)
  - snapshot_option: per-option votes and percentage, keyed by position

	result_snapshot 1──* snapshot_option

# Snapshot Store

SnapshotStore implements election.Publisher. Publish inserts the snapshot and
its options in one transaction; LoadSnapshot reads it back.

Nothing else is persisted: live votes exist only in memory until close.
*/
package db
