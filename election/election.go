// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/tally"
)

// DefaultMaxVoters bounds the voter table when no limit is configured
const DefaultMaxVoters = 1000

var (
	ErrAlreadyVoted     = errors.New("voter has already voted")
	ErrInvalidOption    = errors.New("invalid option")
	ErrCapacityExceeded = errors.New("voter table is full")
	ErrElectionClosed   = errors.New("election is closed")
	ErrTooFewOptions    = fmt.Errorf("at least %d options are required", models.MinOptions)
	ErrInvalidName      = errors.New("invalid option name")
)

// Publisher receives the final snapshot exactly once, when the election closes.
// String names the destination in errors and logs.
type Publisher interface {
	fmt.Stringer
	Publish(ctx context.Context, snap models.ResultSnapshot) error
}

type Config struct {
	MaxVoters  int
	Publishers []Publisher
	// Now is used for open/close timestamps; defaults to time.Now
	Now func() time.Time
}

// Election is the single shared state of the server. Every method takes the
// guard for its whole duration, so each call is one atomic step as seen by
// other sessions. No method performs network I/O.
type Election struct {
	mu sync.Mutex

	options []models.Option
	voters  []models.Voter
	// index maps voter id to its position in voters
	index     map[string]int
	maxVoters int

	closed   bool
	openedAt time.Time
	snapshot *models.ResultSnapshot

	publishers []Publisher
	now        func() time.Time
}

// New creates an open election over the given option names, in order
func New(names []string, cfg Config) (*Election, error) {
	if len(names) < models.MinOptions {
		return nil, ErrTooFewOptions
	}

	options := make([]models.Option, len(names))
	for i, name := range names {
		if err := validateOptionName(name); err != nil {
			return nil, fmt.Errorf("option %d: %w", i+1, err)
		}
		options[i] = models.Option{Name: name}
	}

	maxVoters := cfg.MaxVoters
	if maxVoters <= 0 {
		maxVoters = DefaultMaxVoters
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Election{
		options:    options,
		index:      make(map[string]int),
		maxVoters:  maxVoters,
		openedAt:   now(),
		publishers: cfg.Publishers,
		now:        now,
	}, nil
}

// RegisterVoterIfAbsent creates a voter with has-voted=false unless one
// already exists. Repeat calls never reset an existing voter.
func (e *Election) RegisterVoterIfAbsent(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.registerLocked(id)
	return err
}

// FindVoter returns the voter's position in registration order
func (e *Election) FindVoter(id string) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	return i, ok
}

// Voter returns a copy of the voter record
func (e *Election) Voter(id string) (models.Voter, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.index[id]
	if !ok {
		return models.Voter{}, false
	}
	return e.voters[i], true
}

// RecordVote casts id's vote for the option at the 0-based optionIndex and
// returns the chosen option's name.
//
// Checks run in this order under one hold of the guard: closed, capacity (the
// voter is registered if absent), already voted, option range. Nothing is
// mutated unless every check passes, except that a new voter stays registered.
func (e *Election) RecordVote(id string, optionIndex int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return "", ErrElectionClosed
	}

	vi, err := e.registerLocked(id)
	if err != nil {
		return "", err
	}

	voter := &e.voters[vi]
	if voter.HasVoted {
		return "", ErrAlreadyVoted
	}

	if optionIndex < 0 || optionIndex >= len(e.options) {
		return "", ErrInvalidOption
	}

	option := &e.options[optionIndex]
	voter.HasVoted = true
	voter.VotedOption = option.Name
	option.Votes++

	return option.Name, nil
}

// Close marks the election closed and publishes the final snapshot while
// still holding the guard, so no vote can land between the two. It returns
// true only for the call that performed the transition; later calls are
// no-ops that return the snapshot taken by the first.
func (e *Election) Close(ctx context.Context) (bool, models.ResultSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, *e.snapshot, nil
	}

	e.closed = true
	snap := tally.BuildSnapshot(auth.GenerateID(), e.copyOptionsLocked(), len(e.voters), e.openedAt, e.now())
	e.snapshot = &snap

	var errs []error
	for _, p := range e.publishers {
		if err := p.Publish(ctx, snap); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", p.String(), err))
		}
	}
	return true, snap, errors.Join(errs...)
}

func (e *Election) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *Election) OptionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.options)
}

func (e *Election) VoterCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voters)
}

// OptionNames returns the option names in configured order
func (e *Election) OptionNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, len(e.options))
	for i, opt := range e.options {
		names[i] = opt.Name
	}
	return names
}

// SnapshotOptions returns a copy of the options and their current counts
func (e *Election) SnapshotOptions() []models.Option {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyOptionsLocked()
}

// Score returns counts and the closed flag read together, so a final tag is
// never paired with counts from before the close.
func (e *Election) Score() ([]models.Option, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyOptionsLocked(), e.closed
}

// Results returns counts, registered voter count and closed flag as one read
func (e *Election) Results() (options []models.Option, registered int, closed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyOptionsLocked(), len(e.voters), e.closed
}

// FinalSnapshot returns the snapshot taken at close
func (e *Election) FinalSnapshot() (models.ResultSnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snapshot == nil {
		return models.ResultSnapshot{}, false
	}
	return *e.snapshot, true
}

func (e *Election) registerLocked(id string) (int, error) {
	if i, ok := e.index[id]; ok {
		return i, nil
	}
	if len(e.voters) >= e.maxVoters {
		return -1, ErrCapacityExceeded
	}

	e.voters = append(e.voters, models.Voter{ID: id})
	i := len(e.voters) - 1
	e.index[id] = i
	return i, nil
}

func (e *Election) copyOptionsLocked() []models.Option {
	out := make([]models.Option, len(e.options))
	copy(out, e.options)
	return out
}
