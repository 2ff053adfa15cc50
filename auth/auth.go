// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidSessionID = errors.New("invalid session id format")
)

// sessionIDBytes is the entropy of a session id. Encoded it is 32 characters.
const sessionIDBytes = 24

// GenerateAdminKey creates an HMAC-based admin key for a response store.
// This is deterministic and verifiable
func GenerateAdminKey(storageKey, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(storageKey))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the store
func ValidateAdminKey(storageKey, adminKey, salt string) error {
	expected := GenerateAdminKey(storageKey, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateSessionID creates a random browsing session identifier
func GenerateSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateSessionID checks that id has the shape GenerateSessionID produces.
func ValidateSessionID(id string) error {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil || len(raw) != sessionIDBytes {
		return ErrInvalidSessionID
	}
	return nil
}

// HashSessionID creates a one-way hash of a session id for logs
func HashSessionID(id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// First 8 bytes are enough to correlate log lines
	return hex.EncodeToString(sum[:8])
}
