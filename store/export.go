// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Grazulex/survey/models"
)

// timestampLayout renders export timestamps with millisecond precision in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Export renders the store in the requested format.
func (s *ResponseStore) Export(ctx context.Context, format models.Format) ([]byte, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	switch format {
	case models.FormatJSON:
		return json.MarshalIndent(data, "", "  ")
	case models.FormatCSV:
		return []byte(EncodeCSV(s.questions, data.Responses)), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// EncodeCSV renders one row per response with a column per question, in
// definition order. Answer cells are always quoted.
func EncodeCSV(questions []models.Question, responses []models.Response) string {
	var b strings.Builder

	b.WriteString("Response ID,Timestamp")
	for _, q := range questions {
		b.WriteByte(',')
		b.WriteString(strings.ReplaceAll(q.Text, ",", ";"))
	}
	b.WriteByte('\n')

	for _, resp := range responses {
		b.WriteString(resp.ID)
		b.WriteByte(',')
		b.WriteString(resp.Timestamp.UTC().Format(timestampLayout))

		for _, q := range questions {
			var text string
			if a, ok := resp.Answers[q.ID]; ok {
				if a.IsMultiple() {
					text = strings.Join(a.Values(), "; ")
				} else {
					text = a.Value()
				}
			}
			b.WriteString(`,"`)
			b.WriteString(strings.ReplaceAll(text, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// FileName returns the download name for an export taken at now.
func FileName(format models.Format, now time.Time) string {
	return fmt.Sprintf("survey-data-%d.%s", now.UnixMilli(), format)
}

// ContentType returns the MIME type served with an export.
func ContentType(format models.Format) string {
	if format == models.FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json"
}
