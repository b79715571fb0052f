// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-vote/models"
)

func rgb(red, green, blue int) []models.Option {
	return []models.Option{
		{Name: "Red", Votes: red},
		{Name: "Green", Votes: green},
		{Name: "Blue", Votes: blue},
	}
}

func TestFormatOptionsList(t *testing.T) {
	assert.Equal(t, "OPTIONS 3|Red|Green|Blue", FormatOptionsList([]string{"Red", "Green", "Blue"}))
	assert.Equal(t, "OPTIONS 0", FormatOptionsList(nil))
}

func TestFormatScore(t *testing.T) {
	t.Run("in progress", func(t *testing.T) {
		assert.Equal(t, "SCORE 3|Red:1|Green:1|Blue:0", FormatScore(rgb(1, 1, 0), false))
	})

	t.Run("final has same payload", func(t *testing.T) {
		live := FormatScore(rgb(4, 0, 2), false)
		final := FormatScore(rgb(4, 0, 2), true)
		assert.Equal(t, "CLOSED FINAL 3|Red:4|Green:0|Blue:2", final)
		assert.Equal(t, strings.TrimPrefix(live, "SCORE"), strings.TrimPrefix(final, "CLOSED FINAL"))
	})
}

func TestPercentage(t *testing.T) {
	tallies := Tallies([]models.Option{{Name: "A", Votes: 3}, {Name: "B", Votes: 1}, {Name: "C", Votes: 0}})

	assert.InDelta(t, 75.0, tallies[0].Percentage, 0.001)
	assert.InDelta(t, 25.0, tallies[1].Percentage, 0.001)
	assert.InDelta(t, 0.0, tallies[2].Percentage, 0.001)

	sum := 0.0
	for _, tl := range tallies {
		sum += tl.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.01)
}

func TestPercentage_NoVotes(t *testing.T) {
	for _, tl := range Tallies(rgb(0, 0, 0)) {
		assert.Equal(t, 0.0, tl.Percentage)
	}
	assert.Equal(t, 0.0, Percentage(5, 0))
}

func TestParseScoreLine(t *testing.T) {
	t.Run("final", func(t *testing.T) {
		final, tallies, err := ParseScoreLine("CLOSED FINAL 3|Red:1|Green:1|Blue:0")
		require.NoError(t, err)
		assert.True(t, final)
		require.Len(t, tallies, 3)
		assert.Equal(t, "Red", tallies[0].Name)
		assert.InDelta(t, 50.0, tallies[0].Percentage, 0.001)
		assert.InDelta(t, 50.0, tallies[1].Percentage, 0.001)
		assert.InDelta(t, 0.0, tallies[2].Percentage, 0.001)
	})

	t.Run("in progress", func(t *testing.T) {
		final, tallies, err := ParseScoreLine(FormatScore(rgb(2, 0, 0), false))
		require.NoError(t, err)
		assert.False(t, final)
		assert.Equal(t, 2, tallies[0].Votes)
	})

	t.Run("name containing colon", func(t *testing.T) {
		_, tallies, err := ParseScoreLine("SCORE 1|Plan: B:7")
		require.NoError(t, err)
		assert.Equal(t, "Plan: B", tallies[0].Name)
		assert.Equal(t, 7, tallies[0].Votes)
	})

	bad := []string{
		"",
		"OPTIONS 3|Red|Green|Blue",
		"SCORE x|Red:1",
		"SCORE 2|Red:1",
		"SCORE 1|Red",
		"SCORE 1|Red:-1",
		"SCORE 1|Red:many",
	}
	for _, line := range bad {
		t.Run("rejects "+line, func(t *testing.T) {
			_, _, err := ParseScoreLine(line)
			assert.ErrorIs(t, err, ErrMalformedScore)
		})
	}
}

func TestBuildSnapshot(t *testing.T) {
	opened := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	closed := opened.Add(2 * time.Hour)

	snap := BuildSnapshot("snap-1", rgb(3, 1, 0), 5, opened, closed)

	assert.Equal(t, "snap-1", snap.ID)
	assert.Equal(t, 4, snap.TotalVotes)
	assert.Equal(t, 5, snap.RegisteredVoters)
	assert.Equal(t, closed, snap.ClosedAt)
	require.Len(t, snap.Options, 3)
	assert.InDelta(t, 75.0, snap.Options[0].Percentage, 0.001)
}

func TestWriteFinalReport(t *testing.T) {
	opened := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	snap := BuildSnapshot("snap-1", []models.Option{
		{Name: "A", Votes: 3},
		{Name: "B", Votes: 1},
		{Name: "C", Votes: 0},
	}, 4, opened, opened.Add(90*time.Minute))

	var buf bytes.Buffer
	require.NoError(t, WriteFinalReport(&buf, snap))
	report := buf.String()

	assert.Contains(t, report, "Total votes: 4\n")
	assert.Contains(t, report, "Registered voters: 4\n")
	assert.Contains(t, report, "Closed at: 2025-03-01 10:30:00")
	assert.Contains(t, report, "Voting open for: 1 hour")
	assert.Contains(t, report, "A                                       3  75.00%\n")
	assert.Contains(t, report, "B                                       1  25.00%\n")
	assert.Contains(t, report, "C                                       0   0.00%\n")
}

func TestWriteFinalReport_ThousandsSeparator(t *testing.T) {
	snap := BuildSnapshot("big", []models.Option{{Name: "A", Votes: 1200}, {Name: "B", Votes: 34}}, 1500, time.Time{}, time.Now())

	var buf bytes.Buffer
	require.NoError(t, WriteFinalReport(&buf, snap))
	assert.Contains(t, buf.String(), "Total votes: 1,234\n")
	assert.Contains(t, buf.String(), "Registered voters: 1,500\n")
	assert.NotContains(t, buf.String(), "Voting open for")
}

func TestReportFile_Publish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "final.txt")
	rf := NewReportFile(path)

	snap := BuildSnapshot("snap-2", rgb(1, 1, 0), 3, time.Now().Add(-time.Minute), time.Now())
	require.NoError(t, rf.Publish(context.Background(), snap))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FINAL ELECTION RESULTS")
	assert.Contains(t, string(data), "snap-2")

	// A second publish replaces the report rather than appending
	snap.ID = "snap-3"
	require.NoError(t, rf.Publish(context.Background(), snap))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "snap-2")
	assert.Equal(t, 1, strings.Count(string(data), "FINAL ELECTION RESULTS"))
}
