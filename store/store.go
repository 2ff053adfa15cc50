// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/storage"
)

// PersistenceError reports a failed read or write of the persisted store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("survey store %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ResponseStore is the append-only collection of survey responses, persisted
// as one JSON document under a fixed key.
type ResponseStore struct {
	storage   storage.Storage
	key       string
	version   string
	questions []models.Question

	// Serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

func New(s storage.Storage, settings models.StorageSettings, questions []models.Question) *ResponseStore {
	return &ResponseStore{
		storage:   s,
		key:       settings.Key,
		version:   settings.Version,
		questions: questions,
	}
}

// Key returns the storage key the document lives under.
func (s *ResponseStore) Key() string {
	return s.key
}

func (s *ResponseStore) empty() *models.Store {
	return &models.Store{
		Responses: []models.Response{},
		Stats:     models.Stats{TotalResponses: 0, LastUpdated: nil},
		Version:   s.version,
	}
}

// load returns the persisted store, writing the empty shape first when the
// key does not exist yet. Callers hold s.mu.
func (s *ResponseStore) load(ctx context.Context) (*models.Store, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		data := s.empty()
		if err := s.write(ctx, "initialize", data); err != nil {
			return nil, err
		}
		slog.Info("survey store initialized", "key", s.key, "version", s.version)
		return data, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read", Err: err}
	}

	var data models.Store
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &PersistenceError{Op: "decode", Err: err}
	}
	if data.Responses == nil {
		data.Responses = []models.Response{}
	}
	// Count is always derived from the sequence
	data.Stats.TotalResponses = len(data.Responses)
	return &data, nil
}

func (s *ResponseStore) write(ctx context.Context, op string, data *models.Store) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if err := s.storage.Set(ctx, s.key, string(raw)); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

// Append adds resp to the end of the stored sequence and persists the whole
// store in one write. On failure nothing is persisted.
func (s *ResponseStore) Append(ctx context.Context, resp models.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load(ctx)
	if err != nil {
		return err
	}

	data.Responses = append(data.Responses, resp)
	data.Stats.TotalResponses = len(data.Responses)
	ts := resp.Timestamp
	data.Stats.LastUpdated = &ts

	if err := s.write(ctx, "write", data); err != nil {
		return err
	}

	slog.Info("response saved", "response_id", resp.ID, "total_responses", data.Stats.TotalResponses)
	return nil
}

// Load returns the full persisted store.
func (s *ResponseStore) Load(ctx context.Context) (*models.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// ReadAll returns every response in append order.
func (s *ResponseStore) ReadAll(ctx context.Context) ([]models.Response, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Responses, nil
}

func (s *ResponseStore) Stats(ctx context.Context) (models.Stats, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return data.Stats, nil
}

// Reset overwrites the store with the empty shape. Irreversible.
func (s *ResponseStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, "reset", s.empty()); err != nil {
		return err
	}

	slog.Warn("survey store reset", "key", s.key)
	return nil
}

// Size returns the number of bytes of the persisted document.
func (s *ResponseStore) Size(ctx context.Context) (int, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, &PersistenceError{Op: "read", Err: err}
	}
	return len(raw), nil
}
