// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package storage provides the flat string key/value stores behind the
response store and the session gate.

# Backends

  - Memory: in process, optional quota and TTL
  - SQL: the kv_store table in SQLite (modernc) or PostgreSQL (lib/pq)
  - Redis: one string per key, optional prefix and TTL
  - Mongo: one document per key

Open picks a backend by kind:

	b, err := storage.Open(ctx, storage.KindRedis, "redis://localhost:6379/0", storage.Options{
		TTL:    12 * time.Hour,
		Prefix: "survey:",
	})

A missing key reads as ErrNotFound. A write past a Memory quota fails with
ErrQuotaExceeded and leaves the previous value in place.
*/
package storage
