// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey API server.

The server hosts one fixed multiple-choice survey. Each browser session may
submit once; responses are appended to a single stored document and
aggregated into per-option counts for the results page.

# Starting the Server

The only required setting is the admin salt:

	ADMIN_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d survey.db -s survey.yaml --admin-salt ...

Variables from a .env file in the working directory are loaded first.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORAGE_TYPE (-t): memory, sqlite, postgres, redis or mongo (default: sqlite)
  - STORAGE_URL (-d): Connection string (default for sqlite: survey.db)
  - SESSION_STORE (--session-store): memory or redis (default: memory)
  - SESSION_URL (--session-url): Connection string for the session store
  - SESSION_TTL (--session-ttl): Session lifetime (default: 12h)
  - SURVEY_FILE (-s): YAML or JSON definition (default: built-in survey)

# Architecture

  - handlers: HTTP request handlers (survey, results, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Definition, stored and API types
  - surveydef: Loading and checking survey definitions
  - validate: Answer validation and progress
  - store: The persisted response document and its exports
  - session: Per-session submission gate and cookie
  - results: Aggregation for charts
  - live: Websocket results updates
  - storage: Key/value backends
  - auth: Admin keys and session ids
  - db: SQL schema
  - cliparse: Configuration parsing

The surveyctl command in cmd/surveyctl works against the same storage
from the command line.
*/
package main
