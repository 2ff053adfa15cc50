// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads a .env file, then ParseFlags returns a Config struct with all
settings:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - StorageType: Response storage backend (default: sqlite)
  - StorageURL: Response storage location (default: survey.db for sqlite)
  - SessionStore: Session flag backend, memory or redis (default: memory)
  - SessionURL: Session backend location (required unless memory)
  - SessionTTL: How long a session flag lives (default: 12h)
  - SurveyFile: Survey definition file (default: embedded survey)
  - AdminKeySalt: Secret for admin key HMAC (required)

# CLI Flags

	-p               Server port
	-t               Storage type
	-d               Storage URL
	-s               Survey file
	--session-store  Session storage type
	--session-url    Session storage URL
	--session-ttl    Session lifetime
	--admin-salt     Admin key salt

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	STORAGE_TYPE   → -t
	STORAGE_URL    → -d
	SURVEY_FILE    → -s
	SESSION_STORE  → --session-store
	SESSION_URL    → --session-url
	SESSION_TTL    → --session-ttl
	ADMIN_KEY_SALT → --admin-salt

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over the .env file.

# Validation

ParseFlags returns an error if required values are missing:

  - ADMIN_KEY_SALT must be provided
  - STORAGE_URL must be provided for postgres, redis and mongo
  - SESSION_URL must be provided for a redis session store
*/
package cliparse
