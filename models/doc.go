// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the survey definition, stored data, and the
request and response types of the API.

# Definition Types

Loaded once at startup and never mutated:

  - Survey: title, questions, messages and storage settings
  - Question: single or multiple choice, with its options
  - Option: id, display text and submitted value
  - Messages: every user-facing string

# Stored Types

  - Response: id, UTC timestamp and answers keyed by question id
  - Answer: either one value or a set of values
  - Store: the persisted document of responses, stats and version
  - SessionVoteFlag: whether a session has voted, and when

Answer marshals to a JSON string for single choice and an array for
multiple choice:

	{"q1": "yes", "q2": ["a", "c"]}

# Request and Response Types

  - SubmitResponseRequest: answers
  - SubmitResponseResponse: response_id, message
  - CheckResponse: validation result plus progress
  - AlreadyVotedResponse, ValidationErrorResponse, ErrorResponse
  - ResultsResponse, StatsResponse, ResetResponse

# Constants

Question types:

	TypeSingle   = "single"
	TypeMultiple = "multiple"

Export formats:

	FormatJSON = "json"
	FormatCSV  = "csv"
*/
package models
