// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally turns election counts into protocol frames and reports.

# Protocol Frames

	tally.FormatOptionsList(names)    // OPTIONS 3|Red|Green|Blue
	tally.FormatScore(options, false) // SCORE 3|Red:1|Green:1|Blue:0
	tally.FormatScore(options, true)  // CLOSED FINAL 3|Red:1|Green:1|Blue:0

Score frames carry counts only. Percentages are computed by whoever reads the
frame; ParseScoreLine does that for Go callers.

# Percentages

	percentage = count * 100 / total   (0 when total is 0)

# Final Report

WriteFinalReport renders a ResultSnapshot as a fixed-width table:

	Option                              Votes      %
	-------------------------------------------
	Red                                     1  50.00%

ReportFile writes that table to disk and is one of the publishers run when
the election closes.
*/
package tally
