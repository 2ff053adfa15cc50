// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Grazulex/survey/auth"
	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/storage"
)

// TestStorageKey is the store key used by TestSurvey
const TestStorageKey = "test_survey_responses"

// SetupTestStorage opens a fresh in-memory SQLite key/value store
func SetupTestStorage(t *testing.T) storage.Backend {
	t.Helper()

	s, err := storage.OpenSQL(context.Background(), storage.KindSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		StorageType:  storage.KindSQLite,
		StorageURL:   ":memory:",
		SessionStore: storage.KindMemory,
		AdminKeySalt: "test-admin-salt",
	}
}

// AdminKey returns a valid X-Admin-Key for TestSurvey under cfg
func AdminKey(cfg cliparse.Config) string {
	return auth.GenerateAdminKey(TestStorageKey, cfg.AdminKeySalt)
}

// TestSurvey returns a small survey: a required single choice, a required
// multiple choice and an optional multiple choice question.
func TestSurvey() *models.Survey {
	return &models.Survey{
		Title:    "Test Survey",
		Subtitle: "Testing",
		Questions: []models.Question{
			{
				ID: "q1", Text: "Pick one, please", Type: models.TypeSingle, Required: true,
				Options: []models.Option{
					{ID: "q1_opt1", Text: "Option A", Value: "A"},
					{ID: "q1_opt2", Text: "Option B", Value: "B"},
				},
			},
			{
				ID: "q2", Text: "Pick some", Type: models.TypeMultiple, Required: true,
				Options: []models.Option{
					{ID: "q2_opt1", Text: "X", Value: "X"},
					{ID: "q2_opt2", Text: "Y", Value: "Y"},
					{ID: "q2_opt3", Text: "Z", Value: "Z"},
				},
			},
			{
				ID: "q3", Text: "Anything else?", Type: models.TypeMultiple, Required: false,
				Options: []models.Option{
					{ID: "q3_opt1", Text: "More", Value: "more"},
				},
			},
		},
		Messages: models.Messages{
			Success:          "Thank you for your participation!",
			SuccessDetails:   "Your responses have been successfully saved.",
			Error:            "An error occurred",
			ErrorDetails:     "Please try again later.",
			RequiredField:    "This field is required",
			SelectAtLeastOne: "Please select at least one option",
			AlreadyVoted:     "You have already voted",
			AlreadyVotedInfo: "Each person can only vote once.",
			IncompleteForm:   "Please answer all required questions before submitting.",
		},
		Storage: models.StorageSettings{Key: TestStorageKey, Version: "1.0.0"},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithCookies copies the cookies set on a previous response onto req
func WithCookies(req *http.Request, w *httptest.ResponseRecorder) *http.Request {
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
