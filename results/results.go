// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"math"

	"github.com/Grazulex/survey/models"
)

// CountsFor returns how many responses chose each declared option of q.
// Every declared value is present, zero-vote options included. Answers of
// the wrong shape and undeclared values are ignored.
func CountsFor(q models.Question, responses []models.Response) map[string]int {
	counts := make(map[string]int, len(q.Options))
	for _, opt := range q.Options {
		counts[opt.Value] = 0
	}

	for _, resp := range responses {
		a, ok := resp.Answers[q.ID]
		if !ok {
			continue
		}

		switch q.Type {
		case models.TypeSingle:
			if a.IsMultiple() {
				continue
			}
			if _, declared := counts[a.Value()]; declared {
				counts[a.Value()]++
			}
		case models.TypeMultiple:
			for _, v := range a.Values() {
				if _, declared := counts[v]; declared {
					counts[v]++
				}
			}
		}
	}

	return counts
}

// Tally returns the counts of q in declared option order, with each
// option's share of all votes cast on the question.
func Tally(q models.Question, responses []models.Response) ([]models.OptionCount, int) {
	counts := CountsFor(q, responses)

	total := 0
	for _, c := range counts {
		total += c
	}

	out := make([]models.OptionCount, 0, len(q.Options))
	for _, opt := range q.Options {
		oc := models.OptionCount{Value: opt.Value, Text: opt.Text, Count: counts[opt.Value]}
		if total > 0 {
			oc.Percentage = roundTenth(float64(oc.Count) / float64(total) * 100)
		}
		out = append(out, oc)
	}
	return out, total
}

// Summarize aggregates every question in definition order.
func Summarize(questions []models.Question, responses []models.Response) []models.QuestionResult {
	out := make([]models.QuestionResult, 0, len(questions))
	for _, q := range questions {
		counts, total := Tally(q, responses)
		out = append(out, models.QuestionResult{
			QuestionID: q.ID,
			Text:       q.Text,
			Type:       q.Type,
			Chart:      ChartFor(q.Type),
			Total:      total,
			Counts:     counts,
		})
	}
	return out
}

// ChartFor picks a pie chart for single choice and a bar chart otherwise.
func ChartFor(t models.QuestionType) string {
	if t == models.TypeSingle {
		return models.ChartPie
	}
	return models.ChartBar
}

func roundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}
