// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// exerciseBackend runs the behaviour every backend must share.
func exerciseBackend(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "k1", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "v1" {
		t.Errorf("Get() = %q, want v1", got)
	}

	// Set replaces the whole value
	if err := s.Set(ctx, "k1", `{"responses":[]}`); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, _ = s.Get(ctx, "k1")
	if got != `{"responses":[]}` {
		t.Errorf("Get() after overwrite = %q", got)
	}

	if err := s.Remove(ctx, "k1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := s.Get(ctx, "k1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Remove error = %v, want ErrNotFound", err)
	}

	// Removing a missing key is not an error
	if err := s.Remove(ctx, "never-set"); err != nil {
		t.Errorf("Remove(missing) error = %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestMemoryQuota(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(WithQuota(20))

	if err := m.Set(ctx, "key", "0123456789"); err != nil {
		t.Fatalf("Set() within quota error = %v", err)
	}

	err := m.Set(ctx, "other", "0123456789")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Set() over quota error = %v, want ErrQuotaExceeded", err)
	}

	// Failed write leaves the previous value untouched
	if _, err := m.Get(ctx, "other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejected key was stored")
	}

	// Overwriting a key only counts the new value
	if err := m.Set(ctx, "key", "abcdefghijklmno"); err != nil {
		t.Errorf("overwrite within quota error = %v", err)
	}
}

func TestMemoryTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory(WithTTL(time.Hour), WithClock(func() time.Time { return now }))

	if err := m.Set(ctx, "flag", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	now = now.Add(59 * time.Minute)
	if _, err := m.Get(ctx, "flag"); err != nil {
		t.Errorf("Get() before expiry error = %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.Get(ctx, "flag"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	if err := m.Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, want context.Canceled", err)
	}
}

func TestSQLBackend(t *testing.T) {
	s, err := OpenSQL(context.Background(), KindSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	defer s.Close()

	exerciseBackend(t, s)
}

func TestSQLSchemaIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/survey.db"

	first, err := OpenSQL(context.Background(), KindSQLite, path)
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	if err := first.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	first.Close()

	second, err := OpenSQL(context.Background(), KindSQLite, path)
	if err != nil {
		t.Fatalf("second OpenSQL() error = %v", err)
	}
	defer second.Close()

	got, err := second.Get(context.Background(), "k")
	if err != nil || got != "v" {
		t.Errorf("value did not survive reopen: %q, %v", got, err)
	}
}

func TestRedisBackend(t *testing.T) {
	addr := os.Getenv("SURVEY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SURVEY_TEST_REDIS_ADDR not set")
	}

	r, err := OpenRedis(context.Background(), addr, "survey-test:"+t.Name()+":", time.Minute)
	if err != nil {
		t.Fatalf("OpenRedis() error = %v", err)
	}
	defer r.Close()

	exerciseBackend(t, r)
}

func TestMongoBackend(t *testing.T) {
	uri := os.Getenv("SURVEY_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SURVEY_TEST_MONGO_URI not set")
	}

	m, err := OpenMongo(context.Background(), uri, "survey_test", "kv_"+strings.ToLower(t.Name()))
	if err != nil {
		t.Fatalf("OpenMongo() error = %v", err)
	}
	defer m.Close()

	exerciseBackend(t, m)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		url     string
		wantErr bool
	}{
		{"memory", KindMemory, "", false},
		{"empty kind defaults to memory", "", "", false},
		{"sqlite", KindSQLite, ":memory:", false},
		{"unknown", "etcd", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(context.Background(), tt.kind, tt.url, Options{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if b != nil {
				b.Close()
			}
		})
	}
}
