// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists final result snapshots. It is an election publisher.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Publish writes the snapshot and its option rows in one transaction
func (s *SnapshotStore) Publish(ctx context.Context, snap models.ResultSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var openedAt sql.NullInt64
	if !snap.OpenedAt.IsZero() {
		openedAt = sql.NullInt64{Int64: snap.OpenedAt.UnixMilli(), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO result_snapshot (id, opened_at_ms, closed_at_ms, total_votes, registered_voters)
		VALUES ($1, $2, $3, $4, $5)
	`, snap.ID, openedAt, snap.ClosedAt.UnixMilli(), snap.TotalVotes, snap.RegisteredVoters)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for i, opt := range snap.Options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_option (snapshot_id, position, name, votes, percentage)
			VALUES ($1, $2, $3, $4, $5)
		`, snap.ID, i, opt.Name, opt.Votes, opt.Percentage)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot back by ID
func (s *SnapshotStore) LoadSnapshot(ctx context.Context, id string) (models.ResultSnapshot, error) {
	var snap models.ResultSnapshot
	var openedAt sql.NullInt64
	var closedAt int64

	err := s.db.QueryRowContext(ctx, `
		SELECT id, opened_at_ms, closed_at_ms, total_votes, registered_voters
		FROM result_snapshot
		WHERE id = $1
	`, id).Scan(&snap.ID, &openedAt, &closedAt, &snap.TotalVotes, &snap.RegisteredVoters)

	if err == sql.ErrNoRows {
		return models.ResultSnapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snap.ClosedAt = time.UnixMilli(closedAt).UTC()
	if openedAt.Valid {
		snap.OpenedAt = time.UnixMilli(openedAt.Int64).UTC()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, votes, percentage
		FROM snapshot_option
		WHERE snapshot_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to query snapshot options: %w", err)
	}
	defer rows.Close()

	snap.Options = []models.OptionTally{}
	for rows.Next() {
		var opt models.OptionTally
		if err := rows.Scan(&opt.Name, &opt.Votes, &opt.Percentage); err != nil {
			return models.ResultSnapshot{}, fmt.Errorf("failed to scan snapshot option: %w", err)
		}
		snap.Options = append(snap.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to read snapshot options: %w", err)
	}

	return snap, nil
}

func (s *SnapshotStore) String() string {
	return "snapshot-store"
}
