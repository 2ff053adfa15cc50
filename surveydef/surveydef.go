// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package surveydef

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/Grazulex/survey/models"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDefinition []byte

var ErrInvalidDefinition = errors.New("invalid survey definition")

// Default returns the embedded Kata in recruitment survey.
func Default() (*models.Survey, error) {
	return Parse(defaultDefinition)
}

// Load reads a definition from path. An empty path returns Default.
func Load(path string) (*models.Survey, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML or JSON definition and checks it. Unknown fields are
// rejected.
func Parse(data []byte) (*models.Survey, error) {
	var s models.Survey
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse survey definition: %w", err)
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the structural invariants of a definition.
func Validate(s *models.Survey) error {
	if len(s.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidDefinition)
	}
	if s.Storage.Key == "" {
		return fmt.Errorf("%w: storage key is required", ErrInvalidDefinition)
	}

	questionIDs := make(map[string]bool, len(s.Questions))
	for i, q := range s.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question %d has no id", ErrInvalidDefinition, i+1)
		}
		if questionIDs[q.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidDefinition, q.ID)
		}
		questionIDs[q.ID] = true

		if !q.Type.Valid() {
			return fmt.Errorf("%w: question %q has unknown type %q", ErrInvalidDefinition, q.ID, q.Type)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q has no options", ErrInvalidDefinition, q.ID)
		}

		optionIDs := make(map[string]bool, len(q.Options))
		values := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if optionIDs[opt.ID] {
				return fmt.Errorf("%w: duplicate option id %q in question %q", ErrInvalidDefinition, opt.ID, q.ID)
			}
			optionIDs[opt.ID] = true

			if opt.Value == "" {
				return fmt.Errorf("%w: option %q in question %q has no value", ErrInvalidDefinition, opt.ID, q.ID)
			}
			if values[opt.Value] {
				return fmt.Errorf("%w: duplicate option value %q in question %q", ErrInvalidDefinition, opt.Value, q.ID)
			}
			values[opt.Value] = true
		}
	}

	return nil
}
