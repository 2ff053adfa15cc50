// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Grazulex/survey/models"
)

// Single reports whether a is a single answer that is non-empty after
// trimming whitespace.
func Single(a models.Answer) bool {
	return !a.IsMultiple() && strings.TrimSpace(a.Value()) != ""
}

// Multiple reports whether a is a multiple answer with at least one value.
func Multiple(a models.Answer) bool {
	return a.IsMultiple() && len(a.Values()) > 0
}

// All checks every required question against answers, in definition order.
// Optional questions are never checked.
func All(questions []models.Question, answers map[string]models.Answer, msgs models.Messages) models.ValidationResult {
	errs := []models.FieldError{}

	for _, q := range questions {
		if !q.Required {
			continue
		}

		a := answers[q.ID]
		switch q.Type {
		case models.TypeSingle:
			if !Single(a) {
				errs = append(errs, models.FieldError{QuestionID: q.ID, Message: msgs.RequiredField})
			}
		case models.TypeMultiple:
			if !Multiple(a) {
				errs = append(errs, models.FieldError{QuestionID: q.ID, Message: msgs.SelectAtLeastOne})
			}
		}
	}

	return models.ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Options checks that every answer targets a declared question, has the
// question's shape and only uses declared option values. Blank single
// answers count as no answer here; All decides whether they are acceptable.
func Options(questions []models.Question, answers map[string]models.Answer) []models.FieldError {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	var errs []models.FieldError
	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}

		switch q.Type {
		case models.TypeSingle:
			if a.IsMultiple() {
				errs = append(errs, models.FieldError{QuestionID: q.ID, Message: "expected a single value"})
				continue
			}
			if v := a.Value(); strings.TrimSpace(v) != "" && !q.HasValue(v) {
				errs = append(errs, models.FieldError{QuestionID: q.ID, Message: fmt.Sprintf("unknown option %q", v)})
			}
		case models.TypeMultiple:
			if !a.IsMultiple() {
				if strings.TrimSpace(a.Value()) == "" {
					continue
				}
				errs = append(errs, models.FieldError{QuestionID: q.ID, Message: "expected a list of values"})
				continue
			}
			for _, v := range a.Values() {
				if !q.HasValue(v) {
					errs = append(errs, models.FieldError{QuestionID: q.ID, Message: fmt.Sprintf("unknown option %q", v)})
					break
				}
			}
		}
	}

	// Unknown question ids are reported after declared ones, sorted for stable output
	var unknown []string
	for id := range answers {
		if _, ok := byID[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	for _, id := range unknown {
		errs = append(errs, models.FieldError{QuestionID: id, Message: "unknown question"})
	}

	return errs
}

// Progress returns the rounded percentage of questions with a non-empty answer.
func Progress(questions []models.Question, answers map[string]models.Answer) int {
	if len(questions) == 0 {
		return 0
	}

	answered := 0
	for _, q := range questions {
		a, ok := answers[q.ID]
		if !ok {
			continue
		}
		if Single(a) || Multiple(a) {
			answered++
		}
	}

	return int(math.Round(float64(answered) / float64(len(questions)) * 100))
}
