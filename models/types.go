package models

import "time"

// Question types
const (
	TypeSingle   QuestionType = "single"
	TypeMultiple QuestionType = "multiple"
)

// Chart kinds used by the results page
const (
	ChartPie = "pie"
	ChartBar = "bar"
)

// Export formats
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

type QuestionType string

func (t QuestionType) Valid() bool {
	return t == TypeSingle || t == TypeMultiple
}

type Format string

// Definition types

type Option struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Value string `json:"value" yaml:"value"`
}

type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Required bool         `json:"required" yaml:"required"`
	Options  []Option     `json:"options" yaml:"options"`
}

// HasValue reports whether v is one of the declared option values.
func (q Question) HasValue(v string) bool {
	for _, opt := range q.Options {
		if opt.Value == v {
			return true
		}
	}
	return false
}

type Messages struct {
	Success          string `json:"success" yaml:"success"`
	SuccessDetails   string `json:"success_details" yaml:"success_details"`
	Error            string `json:"error" yaml:"error"`
	ErrorDetails     string `json:"error_details" yaml:"error_details"`
	RequiredField    string `json:"required_field" yaml:"required_field"`
	SelectAtLeastOne string `json:"select_at_least_one" yaml:"select_at_least_one"`
	AlreadyVoted     string `json:"already_voted" yaml:"already_voted"`
	AlreadyVotedInfo string `json:"already_voted_details" yaml:"already_voted_details"`
	IncompleteForm   string `json:"incomplete_form" yaml:"incomplete_form"`
}

type StorageSettings struct {
	Key     string `json:"key" yaml:"key"`
	Version string `json:"version" yaml:"version"`
}

type Survey struct {
	Title       string          `json:"title" yaml:"title"`
	Subtitle    string          `json:"subtitle,omitempty" yaml:"subtitle"`
	Description string          `json:"description,omitempty" yaml:"description"`
	Questions   []Question      `json:"questions" yaml:"questions"`
	Messages    Messages        `json:"messages" yaml:"messages"`
	Storage     StorageSettings `json:"-" yaml:"storage"`
}

// Question returns the question with the given id.
func (s *Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Persisted types. Keys follow the exported file format.

type Response struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Answers   map[string]Answer `json:"answers"`
}

type Stats struct {
	TotalResponses int        `json:"totalResponses"`
	LastUpdated    *time.Time `json:"lastUpdated"`
}

type Store struct {
	Responses []Response `json:"responses"`
	Stats     Stats      `json:"stats"`
	Version   string     `json:"version"`
}

type SessionVoteFlag struct {
	Voted   bool       `json:"voted"`
	VotedAt *time.Time `json:"voted_at,omitempty"`
}

// Validation types

type FieldError struct {
	QuestionID string `json:"question_id"`
	Message    string `json:"message"`
}

type ValidationResult struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// Result types

type OptionCount struct {
	Value      string  `json:"value"`
	Text       string  `json:"text"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type QuestionResult struct {
	QuestionID string        `json:"question_id"`
	Text       string        `json:"text"`
	Type       QuestionType  `json:"type"`
	Chart      string        `json:"chart"`
	Total      int           `json:"total"`
	Counts     []OptionCount `json:"counts"`
}

// Request types

type SubmitResponseRequest struct {
	Answers map[string]Answer `json:"answers"`
}

// Response types

type SurveyResponse struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	Messages    Messages   `json:"messages"`
}

type CheckResponse struct {
	ValidationResult
	Progress int `json:"progress"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

type AlreadyVotedResponse struct {
	Error      string     `json:"error"`
	Message    string     `json:"message"`
	Details    string     `json:"details,omitempty"`
	VotedAt    *time.Time `json:"voted_at,omitempty"`
	ResultsURL string     `json:"results_url"`
}

type ValidationErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

type StatsResponse struct {
	TotalResponses   int        `json:"total_responses"`
	LastUpdated      *time.Time `json:"last_updated,omitempty"`
	LastUpdatedHuman string     `json:"last_updated_human,omitempty"`
	StorageBytes     int        `json:"storage_bytes"`
	StorageSize      string     `json:"storage_size"`
	Version          string     `json:"version"`
}

type ResultsResponse struct {
	TotalResponses int              `json:"total_responses"`
	LastUpdated    *time.Time       `json:"last_updated,omitempty"`
	Questions      []QuestionResult `json:"questions"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
