// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election holds the single shared state of a running election.

# Ownership

The server process owns one *Election and hands the same pointer to every
session. Sessions never touch options, voters or the closed flag directly;
every access goes through a method that holds the election's mutex for its
whole duration.

	e, err := election.New(names, election.Config{MaxVoters: 1000})

# Voting

RecordVote is one atomic step: closed check, lazy voter registration,
has-voted check, option range check, then the mutation.

	name, err := e.RecordVote("V1", 0)
	switch {
	case errors.Is(err, election.ErrElectionClosed):
	case errors.Is(err, election.ErrCapacityExceeded):
	case errors.Is(err, election.ErrAlreadyVoted):
	case errors.Is(err, election.ErrInvalidOption):
	}

Among racing votes from the same identifier exactly one succeeds.

# Closing

Close flips the closed flag, builds the final ResultSnapshot and runs every
configured Publisher, all under the mutex. A vote that takes the mutex after
Close releases it sees the election closed. A second Close is a no-op.

# Options

LoadOptionsFile reads one option name per line and requires at least
models.MinOptions names.
*/
package election
