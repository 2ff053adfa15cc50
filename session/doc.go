// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session tracks whether a browsing session has already submitted.

The session id lives in an HttpOnly cookie that expires with the browser
session. The voted flag and its timestamp are stored under

	survey_voted:<id>
	survey_voted_timestamp:<id>

in a session-scoped storage, usually Memory or Redis with a TTL.
*/
package session
