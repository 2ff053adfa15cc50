// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Backend kinds accepted by Open
const (
	KindMemory   = "memory"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
	KindRedis    = "redis"
	KindMongo    = "mongo"
)

// Storage is a flat string key/value store.
type Storage interface {
	// Get returns ErrNotFound when the key has never been set or was removed.
	Get(ctx context.Context, key string) (string, error)
	// Set replaces the whole value stored under key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend is a Storage that holds a connection.
type Backend interface {
	Storage
	io.Closer
}

// Options tune the backend returned by Open.
type Options struct {
	// TTL expires keys after the duration. Only Redis and Memory honor it.
	TTL time.Duration
	// Prefix is prepended to every key by the Redis backend.
	Prefix string
	// Database and Collection select the Mongo namespace.
	Database   string
	Collection string
}

// Open connects to the backend of the given kind.
func Open(ctx context.Context, kind, url string, opts Options) (Backend, error) {
	var (
		b   Backend
		err error
	)

	// Each branch assigns only on success so a failed open returns a nil interface
	switch kind {
	case KindMemory, "":
		b = NewMemory(WithTTL(opts.TTL))
	case KindSQLite, KindPostgres:
		var s *SQL
		if s, err = OpenSQL(ctx, kind, url); err == nil {
			b = s
		}
	case KindRedis:
		var r *Redis
		if r, err = OpenRedis(ctx, url, opts.Prefix, opts.TTL); err == nil {
			b = r
		}
	case KindMongo:
		var m *Mongo
		if m, err = OpenMongo(ctx, url, opts.Database, opts.Collection); err == nil {
			b = m
		}
	default:
		err = fmt.Errorf("unknown storage type %q", kind)
	}

	if err != nil {
		return nil, err
	}
	return b, nil
}
