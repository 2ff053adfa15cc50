// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"net/http"

	"github.com/Grazulex/survey/auth"
)

// CookieName carries the browsing session id.
const CookieName = "survey_session"

// FromRequest returns the caller's session id, starting a new session when
// the request has no valid cookie. The cookie has no expiry so it ends with
// the browser session.
func FromRequest(w http.ResponseWriter, r *http.Request) (id string, isNew bool, err error) {
	if c, err := r.Cookie(CookieName); err == nil {
		if auth.ValidateSessionID(c.Value) == nil {
			return c.Value, false, nil
		}
	}

	id, err = auth.GenerateSessionID()
	if err != nil {
		return "", false, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return id, true, nil
}
