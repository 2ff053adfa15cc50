// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys and browsing session identifiers.

# Admin Keys

Admin keys use HMAC-SHA256 over the response store's storage key:

	adminKey := auth.GenerateAdminKey(storageKey, salt)
	err := auth.ValidateAdminKey(storageKey, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same storage key and salt always produce the same key, so nothing has to
be stored to validate it. surveyctl admin-key prints it.

# Session IDs

Session ids are random 24-byte secrets carried in the survey_session cookie:

	id, err := auth.GenerateSessionID()
	err = auth.ValidateSessionID(id)

A cookie that fails validation is replaced by a fresh session.

# Log Hashing

Session ids are secrets, so logs carry a salted hash instead:

	slog.Info("vote recorded", "session", auth.HashSessionID(id, salt))
*/
package auth
