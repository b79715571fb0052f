// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/danielhkuo/quickly-vote/models"
)

// LoadOptions reads one option name per line. Blank lines are skipped and
// surrounding whitespace is trimmed; order is preserved.
func LoadOptions(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if err := validateOptionName(name); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	if len(names) < models.MinOptions {
		return nil, fmt.Errorf("found %d: %w", len(names), ErrTooFewOptions)
	}
	return names, nil
}

// LoadOptionsFile opens path and calls LoadOptions
func LoadOptionsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open options file: %w", err)
	}
	defer f.Close()

	names, err := LoadOptions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// Names appear inside '|'-separated frames, so the separator is not allowed
func validateOptionName(name string) error {
	if name == "" || len(name) > models.MaxOptionNameLength {
		return ErrInvalidName
	}
	if strings.ContainsRune(name, '|') {
		return ErrInvalidName
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return ErrInvalidName
		}
	}
	return nil
}
