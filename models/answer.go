// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidAnswer = errors.New("answer must be a string or an array of strings")

// Answer holds either a single value or a set of values.
// The zero value is an empty single answer.
type Answer struct {
	multiple bool
	value    string
	values   []string
}

// SingleAnswer returns the answer to a single-choice question.
func SingleAnswer(value string) Answer {
	return Answer{value: value}
}

// MultipleAnswer returns the answer to a multiple-choice question.
// Duplicate values are dropped, keeping the first occurrence.
func MultipleAnswer(values ...string) Answer {
	seen := make(map[string]bool, len(values))
	set := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		set = append(set, v)
	}
	return Answer{multiple: true, values: set}
}

func (a Answer) IsMultiple() bool {
	return a.multiple
}

// Value returns the selected value of a single answer, or "" for a multiple answer.
func (a Answer) Value() string {
	if a.multiple {
		return ""
	}
	return a.value
}

// Values returns a copy of the selected values of a multiple answer, or nil
// for a single answer.
func (a Answer) Values() []string {
	if !a.multiple {
		return nil
	}
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multiple {
		return json.Marshal(a.values)
	}
	return json.Marshal(a.value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidAnswer
	}

	switch data[0] {
	case 'n':
		if string(data) != "null" {
			return ErrInvalidAnswer
		}
		*a = Answer{}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = SingleAnswer(s)
		return nil
	case '[':
		var values []string
		if err := json.Unmarshal(data, &values); err != nil {
			return ErrInvalidAnswer
		}
		*a = MultipleAnswer(values...)
		return nil
	default:
		return ErrInvalidAnswer
	}
}
