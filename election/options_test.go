// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	names, err := LoadOptions(strings.NewReader("Red\n\n  Green  \r\nBlue\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, names)
}

func TestLoadOptions_TooFew(t *testing.T) {
	_, err := LoadOptions(strings.NewReader("Red\nGreen\n\n"))
	assert.ErrorIs(t, err, ErrTooFewOptions)
}

func TestLoadOptions_InvalidName(t *testing.T) {
	_, err := LoadOptions(strings.NewReader("Red\nGreen|Blue\nYellow\n"))
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadOptionsFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "opcoes.txt")
		require.NoError(t, os.WriteFile(path, []byte("Alpha\nBeta\nGamma\nDelta\n"), 0o644))

		names, err := LoadOptionsFile(path)
		require.NoError(t, err)
		assert.Len(t, names, 4)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOptionsFile(filepath.Join(dir, "missing.txt"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
