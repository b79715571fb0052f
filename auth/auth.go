// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/subtle"
	"errors"
	"unicode"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrInvalidVoterID = errors.New("invalid voter id")
	ErrVoterIDTooLong = errors.New("voter id too long")
)

// GenerateID returns a random identifier for sessions and snapshots
func GenerateID() string {
	return uuid.NewString()
}

// ValidateVoterID checks a client-supplied identifier before it is bound to a session.
// The identifier is trusted as given; this only enforces shape and length.
func ValidateVoterID(id string) error {
	if id == "" {
		return ErrInvalidVoterID
	}
	if len(id) > models.MaxVoterIDLength {
		return ErrVoterIDTooLong
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return ErrInvalidVoterID
		}
	}
	return nil
}

// IsAdmin reports whether voterID is the reserved administrator identifier
func IsAdmin(voterID, adminID string) bool {
	if adminID == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(voterID), []byte(adminID)) == 1
}
