// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL storage backend.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on SQLite (modernc.org/sqlite, driver "sqlite")
and PostgreSQL (github.com/lib/pq, driver "postgres").

# Tables

  - kv_store: one row per storage key (store_key, value, updated_at)

The survey store is a single row holding the JSON document; session flags
are two rows per browsing session.

# Indexes

  - kv_store.store_key (primary key)
  - kv_store.updated_at
*/
package db
