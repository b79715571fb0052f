// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the data types shared across the voting server.

# Domain Types

  - Option: a candidate name and its running vote count
  - Voter: a client identifier, its has-voted flag and chosen option
  - OptionTally: an option's count and percentage of the total
  - ResultSnapshot: the immutable tally persisted when the election closes

# Status API Types

The read-only HTTP status API encodes:

  - OptionsResponse: GET /options
  - ResultsResponse: GET /results
  - ErrorResponse: any non-2xx reply

# Bounds

Identifiers and option names are bounded so that every protocol frame has a
known maximum size:

	MaxVoterIDLength    = 64
	MaxOptionNameLength = 100
	MinOptions          = 3

# Status Values

An election is either StatusOpen or StatusClosed. The transition is one way.
*/
package models
