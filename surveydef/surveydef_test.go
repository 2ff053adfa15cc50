// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package surveydef

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Grazulex/survey/models"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if s.Title != "Kata in Recruitment Survey" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Storage.Key != "bnp_survey_responses" || s.Storage.Version != "1.0.0" {
		t.Errorf("Storage = %+v", s.Storage)
	}
	if len(s.Questions) != 5 {
		t.Fatalf("len(Questions) = %d, want 5", len(s.Questions))
	}

	wantTypes := []models.QuestionType{
		models.TypeSingle, models.TypeMultiple, models.TypeMultiple, models.TypeSingle, models.TypeMultiple,
	}
	for i, q := range s.Questions {
		if q.Type != wantTypes[i] {
			t.Errorf("question %s type = %s, want %s", q.ID, q.Type, wantTypes[i])
		}
	}

	if s.Questions[4].Required {
		t.Error("q5 should be optional")
	}

	q4, ok := s.Question("q4")
	if !ok {
		t.Fatal("Question(q4) not found")
	}
	if got := q4.Options[3].Text; got != "Online platform (HackerRank, Codility, etc.)" {
		t.Errorf("q4 option 4 text = %q", got)
	}
	if !q4.HasValue("takehome") || q4.HasValue("yes_regularly") {
		t.Error("HasValue() does not match declared options")
	}

	if s.Messages.RequiredField != "This field is required" {
		t.Errorf("RequiredField = %q", s.Messages.RequiredField)
	}
	if s.Messages.SelectAtLeastOne != "Please select at least one option" {
		t.Errorf("SelectAtLeastOne = %q", s.Messages.SelectAtLeastOne)
	}
	if !strings.HasPrefix(s.Description, "Help us understand") || strings.Contains(s.Description, "\n") {
		t.Errorf("Description = %q", s.Description)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.json")

	// JSON is valid YAML
	content := `{
  "title": "Lunch",
  "questions": [
    {"id": "food", "text": "Food?", "type": "single", "required": true,
     "options": [{"id": "f1", "text": "Pizza", "value": "pizza"}]}
  ],
  "storage": {"key": "lunch_responses", "version": "2.0.0"}
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Title != "Lunch" || s.Storage.Key != "lunch_responses" {
		t.Errorf("Load() = %+v", s)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}

	s, err = Load("")
	if err != nil || s.Storage.Key != "bnp_survey_responses" {
		t.Errorf("Load(\"\") = %v, %v; want default survey", s, err)
	}
}

func TestParseRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no questions",
			yaml: "title: x\nquestions: []\nstorage: {key: k}\n",
		},
		{
			name: "missing storage key",
			yaml: `title: x
questions:
  - {id: q1, text: Q, type: single, options: [{id: o1, text: A, value: a}]}
`,
		},
		{
			name: "duplicate question id",
			yaml: `storage: {key: k}
questions:
  - {id: q1, text: Q, type: single, options: [{id: o1, text: A, value: a}]}
  - {id: q1, text: Q, type: single, options: [{id: o1, text: A, value: a}]}
`,
		},
		{
			name: "unknown type",
			yaml: `storage: {key: k}
questions:
  - {id: q1, text: Q, type: ranking, options: [{id: o1, text: A, value: a}]}
`,
		},
		{
			name: "empty options",
			yaml: `storage: {key: k}
questions:
  - {id: q1, text: Q, type: multiple, options: []}
`,
		},
		{
			name: "duplicate option id",
			yaml: `storage: {key: k}
questions:
  - {id: q1, text: Q, type: single, options: [{id: o1, text: A, value: a}, {id: o1, text: B, value: b}]}
`,
		},
		{
			name: "duplicate option value",
			yaml: `storage: {key: k}
questions:
  - {id: q1, text: Q, type: single, options: [{id: o1, text: A, value: a}, {id: o2, text: B, value: a}]}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidDefinition) {
				t.Errorf("Parse() error = %v, want ErrInvalidDefinition", err)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	yaml := `storage: {key: k}
questoins: []
`
	if _, err := Parse([]byte(yaml)); err == nil {
		t.Error("Parse() expected error for misspelled field")
	}
}
