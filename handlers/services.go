// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"

	"github.com/Grazulex/survey/live"
	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/results"
	"github.com/Grazulex/survey/session"
	"github.com/Grazulex/survey/store"
)

// Services are the components every handler works against.
type Services struct {
	Survey    *models.Survey
	Responses *store.ResponseStore
	Sessions  *session.Gate
	// Hub is optional; without it no live updates are sent.
	Hub *live.Hub
}

// Snapshot aggregates the current store for the results page.
func (s Services) Snapshot(ctx context.Context) (models.ResultsResponse, error) {
	data, err := s.Responses.Load(ctx)
	if err != nil {
		return models.ResultsResponse{}, err
	}

	return models.ResultsResponse{
		TotalResponses: data.Stats.TotalResponses,
		LastUpdated:    data.Stats.LastUpdated,
		Questions:      results.Summarize(s.Survey.Questions, data.Responses),
	}, nil
}

// LiveSnapshot adapts Snapshot for the live results handler.
func (s Services) LiveSnapshot(ctx context.Context) (any, error) {
	return s.Snapshot(ctx)
}

// notify pushes fresh results to live subscribers.
func (s Services) notify(ctx context.Context, msgType live.MessageType) {
	if s.Hub == nil {
		return
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		slog.Warn("skipping live update", "type", msgType, "error", err)
		return
	}
	s.Hub.Broadcast(msgType, snap)
}
