// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the snapshot database and verifies the connection.
// dbType is "sqlite" or "postgres".
func Open(dbType, url string) (*sql.DB, error) {
	driver := ""
	switch dbType {
	case "sqlite":
		driver = "sqlite"
		if err := ensureSQLiteDir(url); err != nil {
			return nil, err
		}
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dbType == "sqlite" {
		// SQLite allows one writer at a time
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func ensureSQLiteDir(url string) error {
	path := strings.TrimPrefix(url, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

const schema = `
-- Final result snapshots, one per close
CREATE TABLE IF NOT EXISTS result_snapshot (
    id TEXT PRIMARY KEY,
    opened_at_ms BIGINT,
    closed_at_ms BIGINT NOT NULL,
    total_votes INTEGER NOT NULL CHECK (total_votes >= 0),
    registered_voters INTEGER NOT NULL CHECK (registered_voters >= 0)
);

CREATE INDEX IF NOT EXISTS idx_result_snapshot_closed_at ON result_snapshot(closed_at_ms);

-- Per-option tallies, in ballot order
CREATE TABLE IF NOT EXISTS snapshot_option (
    snapshot_id TEXT NOT NULL REFERENCES result_snapshot(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    votes INTEGER NOT NULL CHECK (votes >= 0),
    percentage DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (snapshot_id, position)
);
`
