// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eventlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "eleicao.log")

	logger, closer, err := Open(path, nil)
	require.NoError(t, err)
	logger.Info("server started", "port", 9000)
	require.NoError(t, closer.Close())

	// Reopening must append, not truncate
	logger, closer, err = Open(path, nil)
	require.NoError(t, err)
	logger.Info("vote recorded", "voter", "V1", "option", "Red")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `msg="server started"`)
	assert.Contains(t, lines[0], "port=9000")
	assert.Contains(t, lines[1], "voter=V1")
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "time="), "line should be timestamped: %s", line)
	}
}

func TestOpen_Echo(t *testing.T) {
	var echo bytes.Buffer
	logger, closer, err := Open(filepath.Join(t.TempDir(), "x.log"), &echo)
	require.NoError(t, err)
	defer closer.Close()

	logger.Warn("connection closed")
	assert.Contains(t, echo.String(), "level=WARN")
}

func TestOpen_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := Open(filepath.Join(blocker, "eleicao.log"), nil)
	assert.Error(t, err)
}
