// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bufio"
	"database/sql"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
)

// DefaultOptions is the ballot used when a test does not supply one
var DefaultOptions = []string{"Red", "Green", "Blue"}

// GetTestConfig returns a config suitable for tests
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		HTTPPort:     -1,
		AdminID:      "ADMIN",
		DatabaseType: "sqlite",
		MaxVoters:    election.DefaultMaxVoters,
	}
}

// NewTestElection creates an open election over names, or DefaultOptions
// when names is empty
func NewTestElection(t *testing.T, names ...string) *election.Election {
	t.Helper()
	return NewTestElectionWithConfig(t, election.Config{}, names...)
}

func NewTestElectionWithConfig(t *testing.T, cfg election.Config, names ...string) *election.Election {
	t.Helper()

	if len(names) == 0 {
		names = DefaultOptions
	}
	e, err := election.New(names, cfg)
	if err != nil {
		t.Fatalf("Failed to create election: %v", err)
	}
	return e
}

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "election.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// Client is a line-oriented test client for the voting protocol
type Client struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

// Dial connects to addr and closes the connection when the test ends
func Dial(t *testing.T, addr string) *Client {
	t.Helper()

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", addr, err)
	}
	t.Cleanup(func() { conn.Close() })

	return &Client{t: t, conn: conn, r: bufio.NewReader(conn)}
}

// Send writes one frame, adding the newline
func (c *Client) Send(line string) {
	c.t.Helper()
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		c.t.Fatalf("Failed to send %q: %v", line, err)
	}
}

// ReadLine reads one response line without its terminator
func (c *Client) ReadLine() string {
	c.t.Helper()

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	line, err := c.r.ReadString('\n')
	if err != nil {
		c.t.Fatalf("Failed to read response: %v", err)
	}
	return strings.TrimRight(line, "\r\n")
}

// Roundtrip sends line and returns the response
func (c *Client) Roundtrip(line string) string {
	c.t.Helper()
	c.Send(line)
	return c.ReadLine()
}

// Expect sends line and fails the test unless the response equals want
func (c *Client) Expect(line, want string) {
	c.t.Helper()
	if got := c.Roundtrip(line); got != want {
		c.t.Errorf("%s: expected %q, got %q", line, want, got)
	}
}

// Close closes the client side of the connection
func (c *Client) Close() error {
	return c.conn.Close()
}
