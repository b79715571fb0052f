// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Election status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Field bounds
const (
	MaxVoterIDLength    = 64
	MaxOptionNameLength = 100
	MinOptions          = 3
)

// Domain types

// Option is one selectable candidate and its running count.
type Option struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// Voter tracks a single identifier across at most one successful vote.
type Voter struct {
	ID          string `json:"id"`
	HasVoted    bool   `json:"has_voted"`
	VotedOption string `json:"voted_option,omitempty"`
}

// Tally types

type OptionTally struct {
	Name       string  `json:"name"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type ResultSnapshot struct {
	ID               string        `json:"id"`
	OpenedAt         time.Time     `json:"opened_at"`
	ClosedAt         time.Time     `json:"closed_at"`
	TotalVotes       int           `json:"total_votes"`
	RegisteredVoters int           `json:"registered_voters"`
	Options          []OptionTally `json:"options"`
}

// Response types (status API)

type OptionsResponse struct {
	Options []string `json:"options"`
}

type ResultsResponse struct {
	Status           string        `json:"status"`
	TotalVotes       int           `json:"total_votes"`
	RegisteredVoters int           `json:"registered_voters"`
	Options          []OptionTally `json:"options"`
	SnapshotID       *string       `json:"snapshot_id,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
