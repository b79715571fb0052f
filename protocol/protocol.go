// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package protocol

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
)

// Client commands
const (
	CmdHello = "HELLO"
	CmdList  = "LIST"
	CmdVote  = "VOTE"
	CmdScore = "SCORE"
	CmdAdmin = "ADMIN"
	CmdBye   = "BYE"

	// ArgClose is the only argument accepted by ADMIN
	ArgClose = "CLOSE"
)

// Server responses
const (
	RespWelcome        = "WELCOME"
	RespOptions        = "OPTIONS"
	RespVoted          = "OK VOTED"
	RespScore          = "SCORE"
	RespFinal          = "CLOSED FINAL"
	RespBye            = "BYE"
	RespElectionClosed = "OK ELECTION_CLOSED"

	ErrDuplicateVote    = "ERR DUPLICATE_VOTE"
	ErrInvalidOption    = "ERR INVALID_OPTION"
	ErrClosed           = "ERR ELECTION_CLOSED"
	ErrNotAuthenticated = "ERR NOT_AUTHENTICATED"
	ErrNotAuthorized    = "ERR NOT_AUTHORIZED"
	ErrUnknownCommand   = "ERR UNKNOWN_COMMAND"
	ErrCapacityExceeded = "ERR CAPACITY_EXCEEDED"
	ErrLineTooLong      = "ERR LINE_TOO_LONG"
)

// MaxLineLength bounds a single frame, excluding the line terminator
const MaxLineLength = 1024

var (
	ErrEmptyLine = errors.New("empty line")
	ErrFrameSize = errors.New("line exceeds maximum length")
)

// Command is one parsed client frame
type Command struct {
	Verb string
	Arg  string
}

// ParseLine splits a frame on the first whitespace run. The verb is matched
// case-sensitively by the caller; everything after it is one argument string.
func ParseLine(line string) (Command, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) > MaxLineLength {
		return Command{}, ErrFrameSize
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmptyLine
	}

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return Command{Verb: line}, nil
	}
	return Command{Verb: line[:i], Arg: strings.TrimSpace(line[i:])}, nil
}

// LineReader reads newline-terminated frames and rejects, rather than
// truncates, frames longer than its limit.
type LineReader struct {
	r     *bufio.Reader
	limit int
}

// NewLineReader wraps r with the default MaxLineLength
func NewLineReader(r io.Reader) *LineReader {
	return NewLineReaderSize(r, MaxLineLength)
}

func NewLineReaderSize(r io.Reader, limit int) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, limit+2), limit: limit}
}

// ReadLine returns the next frame without its terminator.
//
// An oversize frame is consumed up to its newline and reported as
// ErrFrameSize so the caller can reply and keep reading. A final frame without
// a newline is returned as-is; io.EOF is returned only when nothing was read.
func (lr *LineReader) ReadLine() (string, error) {
	var buf []byte
	oversize := false

	for {
		chunk, err := lr.r.ReadSlice('\n')
		if !oversize {
			buf = append(buf, chunk...)
			if len(strings.TrimRight(string(buf), "\r\n")) > lr.limit {
				oversize = true
				buf = nil
			}
		}

		switch {
		case err == nil:
			if oversize {
				return "", ErrFrameSize
			}
			return strings.TrimRight(string(buf), "\r\n"), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if oversize {
				return "", ErrFrameSize
			}
			if len(buf) == 0 {
				return "", io.EOF
			}
			return strings.TrimRight(string(buf), "\r\n"), nil
		default:
			return "", err
		}
	}
}

// WriteLine writes one response frame followed by a newline
func WriteLine(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	return err
}
