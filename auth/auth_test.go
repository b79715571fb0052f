// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("GenerateID() = %q, not a uuid: %v", id, err)
	}

	// Two IDs should be different
	if GenerateID() == GenerateID() {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestValidateVoterID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{"simple", "V1", nil},
		{"with spaces", "Maria Silva", nil},
		{"unicode", "eleitor-ção", nil},
		{"max length", strings.Repeat("a", 64), nil},
		{"empty", "", ErrInvalidVoterID},
		{"too long", strings.Repeat("a", 65), ErrVoterIDTooLong},
		{"control char", "V1\x00", ErrInvalidVoterID},
		{"tab", "V\t1", ErrInvalidVoterID},
		{"invalid utf8", "V\xff", ErrInvalidVoterID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVoterID(tt.id)
			if err != tt.wantErr {
				t.Errorf("ValidateVoterID(%q) error = %v, want %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name    string
		voterID string
		adminID string
		want    bool
	}{
		{"admin", "ADMIN", "ADMIN", true},
		{"voter", "V1", "ADMIN", false},
		{"case sensitive", "admin", "ADMIN", false},
		{"prefix", "ADMIN2", "ADMIN", false},
		{"custom admin", "root", "root", true},
		{"disabled", "", "", false},
		{"disabled with id", "ADMIN", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdmin(tt.voterID, tt.adminID); got != tt.want {
				t.Errorf("IsAdmin(%q, %q) = %v, want %v", tt.voterID, tt.adminID, got, tt.want)
			}
		})
	}
}
