// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/storage"
)

const (
	votedKeyPrefix   = "survey_voted:"
	votedAtKeyPrefix = "survey_voted_timestamp:"
	votedValue       = "true"
	votedAtLayout    = time.RFC3339Nano
)

// Gate limits each browsing session to one submission. State lives in a
// session-scoped storage, keyed by session id.
type Gate struct {
	storage storage.Storage
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock serializes submissions of one session. refs counts holders
// and waiters so the entry can be dropped when nobody uses it.
type sessionLock struct {
	ch   chan struct{}
	refs int
}

func NewGate(s storage.Storage) *Gate {
	return &Gate{storage: s, now: time.Now, locks: make(map[string]*sessionLock)}
}

// WithClock returns a copy of g that reads time from now.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	return &Gate{storage: g.storage, now: now, locks: make(map[string]*sessionLock)}
}

func votedKey(id string) string   { return votedKeyPrefix + id }
func votedAtKey(id string) string { return votedAtKeyPrefix + id }

// MarkVoted moves the session to the voted state. Calling it again keeps the
// state and refreshes the timestamp.
func (g *Gate) MarkVoted(ctx context.Context, sessionID string) error {
	ts := g.now().UTC().Format(votedAtLayout)

	if err := g.storage.Set(ctx, votedKey(sessionID), votedValue); err != nil {
		return fmt.Errorf("failed to mark session voted: %w", err)
	}
	if err := g.storage.Set(ctx, votedAtKey(sessionID), ts); err != nil {
		return fmt.Errorf("failed to record vote timestamp: %w", err)
	}
	return nil
}

// HasVoted reads the session state without changing it.
func (g *Gate) HasVoted(ctx context.Context, sessionID string) (bool, error) {
	v, err := g.storage.Get(ctx, votedKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session state: %w", err)
	}
	return v == votedValue, nil
}

// Flag returns the full vote flag, including when the vote was recorded.
func (g *Gate) Flag(ctx context.Context, sessionID string) (models.SessionVoteFlag, error) {
	voted, err := g.HasVoted(ctx, sessionID)
	if err != nil || !voted {
		return models.SessionVoteFlag{}, err
	}

	flag := models.SessionVoteFlag{Voted: true}
	raw, err := g.storage.Get(ctx, votedAtKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return flag, nil
	}
	if err != nil {
		return models.SessionVoteFlag{}, fmt.Errorf("failed to read vote timestamp: %w", err)
	}

	if ts, err := time.Parse(votedAtLayout, raw); err == nil {
		flag.VotedAt = &ts
	} else {
		slog.Warn("ignoring malformed vote timestamp", "value", raw)
	}
	return flag, nil
}

// Clear forces the session back to the not-voted state.
func (g *Gate) Clear(ctx context.Context, sessionID string) error {
	if err := g.storage.Remove(ctx, votedKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	if err := g.storage.Remove(ctx, votedAtKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear vote timestamp: %w", err)
	}
	return nil
}

// Enforce reports whether the session may submit.
func (g *Gate) Enforce(ctx context.Context, sessionID string) (bool, error) {
	voted, err := g.HasVoted(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return !voted, nil
}

// Claim takes the session's submission slot. When allowed is true the caller
// holds the slot until it calls release, normally after MarkVoted, and
// every other Claim for the session waits. A release without MarkVoted
// leaves the session free to submit again. When allowed is false or err is
// set, release is a no-op.
func (g *Gate) Claim(ctx context.Context, sessionID string) (release func(), allowed bool, err error) {
	unlock, err := g.lock(ctx, sessionID)
	if err != nil {
		return func() {}, false, err
	}

	allowed, err = g.Enforce(ctx, sessionID)
	if err != nil || !allowed {
		unlock()
		return func() {}, allowed, err
	}

	var once sync.Once
	return func() { once.Do(unlock) }, true, nil
}

func (g *Gate) lock(ctx context.Context, sessionID string) (func(), error) {
	g.mu.Lock()
	l, ok := g.locks[sessionID]
	if !ok {
		l = &sessionLock{ch: make(chan struct{}, 1)}
		g.locks[sessionID] = l
	}
	l.refs++
	g.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		g.unref(sessionID, l)
		return nil, ctx.Err()
	}

	return func() {
		<-l.ch
		g.unref(sessionID, l)
	}, nil
}

func (g *Gate) unref(sessionID string, l *sessionLock) {
	g.mu.Lock()
	defer g.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(g.locks, sessionID)
	}
}
