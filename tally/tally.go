// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/protocol"
)

var ErrMalformedScore = errors.New("malformed score line")

// FormatOptionsList serializes option names for the pre-vote menu
func FormatOptionsList(names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", protocol.RespOptions, len(names))
	for _, name := range names {
		b.WriteByte('|')
		b.WriteString(name)
	}
	return b.String()
}

// FormatScore serializes name:count pairs. final only selects the tag; the
// payload is identical and percentages are left to the reader.
func FormatScore(options []models.Option, final bool) string {
	tag := protocol.RespScore
	if final {
		tag = protocol.RespFinal
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d", tag, len(options))
	for _, opt := range options {
		fmt.Fprintf(&b, "|%s:%d", opt.Name, opt.Votes)
	}
	return b.String()
}

// Total sums the vote counts
func Total(options []models.Option) int {
	total := 0
	for _, opt := range options {
		total += opt.Votes
	}
	return total
}

// Percentage returns votes*100/total, or 0 when no votes were cast
func Percentage(votes, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(votes) * 100.0 / float64(total)
}

// Tallies attaches percentages to each option, preserving order
func Tallies(options []models.Option) []models.OptionTally {
	total := Total(options)
	out := make([]models.OptionTally, len(options))
	for i, opt := range options {
		out[i] = models.OptionTally{
			Name:       opt.Name,
			Votes:      opt.Votes,
			Percentage: Percentage(opt.Votes, total),
		}
	}
	return out
}

// BuildSnapshot computes the final result record for a closed election
func BuildSnapshot(id string, options []models.Option, registeredVoters int, openedAt, closedAt time.Time) models.ResultSnapshot {
	return models.ResultSnapshot{
		ID:               id,
		OpenedAt:         openedAt,
		ClosedAt:         closedAt,
		TotalVotes:       Total(options),
		RegisteredVoters: registeredVoters,
		Options:          Tallies(options),
	}
}

// ParseScoreLine is the reader side of FormatScore: it decodes a SCORE or
// CLOSED FINAL frame and computes percentages from the counts.
func ParseScoreLine(line string) (final bool, tallies []models.OptionTally, err error) {
	var rest string
	switch {
	case strings.HasPrefix(line, protocol.RespFinal+" "):
		final = true
		rest = strings.TrimPrefix(line, protocol.RespFinal+" ")
	case strings.HasPrefix(line, protocol.RespScore+" "):
		rest = strings.TrimPrefix(line, protocol.RespScore+" ")
	default:
		return false, nil, ErrMalformedScore
	}

	fields := strings.Split(rest, "|")
	n, err := strconv.Atoi(fields[0])
	if err != nil || n != len(fields)-1 {
		return false, nil, ErrMalformedScore
	}

	options := make([]models.Option, 0, n)
	for _, field := range fields[1:] {
		// Names may contain ':'; the count follows the last one
		i := strings.LastIndexByte(field, ':')
		if i < 0 {
			return false, nil, ErrMalformedScore
		}
		votes, err := strconv.Atoi(field[i+1:])
		if err != nil || votes < 0 {
			return false, nil, ErrMalformedScore
		}
		options = append(options, models.Option{Name: field[:i], Votes: votes})
	}

	return final, Tallies(options), nil
}
