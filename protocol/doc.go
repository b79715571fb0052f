// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package protocol defines the line-oriented text protocol spoken between voting
clients and the server.

# Framing

Each message is one line terminated by "\n" (a preceding "\r" is tolerated).
Every client command produces exactly one response line. Frames longer than
MaxLineLength bytes are rejected with ErrFrameSize; they are never truncated.

	lr := protocol.NewLineReader(conn)
	line, err := lr.ReadLine()

# Commands

	HELLO <voterId>   bind this connection to a voter identifier
	LIST              list option names
	VOTE <n>          vote for option n (1-based)
	SCORE             current or final tally
	ADMIN CLOSE       close the election (administrator only)
	BYE               end the session

ParseLine splits a frame on its first whitespace run: the verb is matched
case-sensitively and the remainder is a single argument string.

# Responses

	WELCOME <id>
	OPTIONS <n>|<name>|<name>...
	OK VOTED <name>
	SCORE <n>|<name>:<count>|...
	CLOSED FINAL <n>|<name>:<count>|...
	OK ELECTION_CLOSED
	BYE
	ERR <reason>
*/
package protocol
