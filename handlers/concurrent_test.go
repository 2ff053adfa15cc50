// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Grazulex/survey/storage"
	"github.com/Grazulex/survey/testutil"
)

// slowStorage widens the window between reading the session state and
// marking it, so overlapping submissions really overlap
type slowStorage struct {
	storage.Storage
	delay time.Duration
}

func (s slowStorage) Set(ctx context.Context, key, value string) error {
	time.Sleep(s.delay)
	return s.Storage.Set(ctx, key, value)
}

// TestConcurrentSubmissions verifies that simultaneous submissions from
// different sessions are all stored, with no lost appends
func TestConcurrentSubmissions(t *testing.T) {
	svc := newTestServices(t, nil)
	handler := NewSurveyHandler(svc, testutil.GetTestConfig())

	numSessions := 10

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numSessions; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.Submit(w, testutil.MakeRequest("POST", "/survey/responses", validAnswers(), nil))

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numSessions {
		t.Errorf("Expected %d successful submissions, got %d", numSessions, successCount.Load())
	}

	stored, err := svc.Responses.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	if len(stored) != numSessions {
		t.Errorf("Expected %d responses in store, got %d", numSessions, len(stored))
	}

	ids := make(map[string]bool, len(stored))
	for _, resp := range stored {
		if ids[resp.ID] {
			t.Errorf("Duplicate response id %s", resp.ID)
		}
		ids[resp.ID] = true
	}

	stats, err := svc.Responses.Stats(context.Background())
	if err != nil {
		t.Fatalf("Failed to read stats: %v", err)
	}
	if stats.TotalResponses != len(stored) {
		t.Errorf("Expected totalResponses %d, got %d", len(stored), stats.TotalResponses)
	}
}

// TestSequentialResubmissionsBlocked verifies that once a session is marked,
// every later attempt from it is rejected
func TestSequentialResubmissionsBlocked(t *testing.T) {
	svc := newTestServices(t, nil)
	handler := NewSurveyHandler(svc, testutil.GetTestConfig())

	first := httptest.NewRecorder()
	handler.Submit(first, testutil.MakeRequest("POST", "/survey/responses", validAnswers(), nil))
	testutil.AssertStatus(t, first, http.StatusCreated)

	numAttempts := 5
	var conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.Submit(w, testutil.WithCookies(testutil.MakeRequest("POST", "/survey/responses", validAnswers(), nil), first))
			if w.Code == http.StatusConflict {
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(conflicts.Load()) != numAttempts {
		t.Errorf("Expected %d rejected attempts, got %d", numAttempts, conflicts.Load())
	}

	stored, err := svc.Responses.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("Expected exactly 1 stored response, got %d", len(stored))
	}
}

// TestConcurrentSubmissionsOneSession verifies that simultaneous submissions
// carrying the same session cookie store exactly one response
func TestConcurrentSubmissionsOneSession(t *testing.T) {
	svc := newTestServices(t, slowStorage{Storage: storage.NewMemory(), delay: 5 * time.Millisecond})
	handler := NewSurveyHandler(svc, testutil.GetTestConfig())

	start := httptest.NewRecorder()
	handler.GetSurvey(start, testutil.MakeRequest("GET", "/survey", nil, nil))
	testutil.AssertStatus(t, start, http.StatusOK)

	numAttempts := 5
	var created, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.Submit(w, testutil.WithCookies(testutil.MakeRequest("POST", "/survey/responses", validAnswers(), nil), start))
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			}
		}()
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted submission, got %d", created.Load())
	}
	if int(conflicts.Load()) != numAttempts-1 {
		t.Errorf("Expected %d rejected attempts, got %d", numAttempts-1, conflicts.Load())
	}

	stored, err := svc.Responses.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("Failed to read store: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("Expected exactly 1 stored response, got %d", len(stored))
	}
}
