// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/middleware"
	"github.com/Grazulex/survey/models"
)

type ResultsHandler struct {
	svc Services
	cfg cliparse.Config
}

func NewResultsHandler(svc Services, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// GetResults handles GET /results
// Returns per-option counts for every question, in definition order
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}

// GetStats handles GET /results/stats
// Returns the response count, last update and stored size
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.svc.Responses.Load(ctx)
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	size, err := h.svc.Responses.Size(ctx)
	if err != nil {
		slog.Error("failed to measure store", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	resp := models.StatsResponse{
		TotalResponses: data.Stats.TotalResponses,
		LastUpdated:    data.Stats.LastUpdated,
		StorageBytes:   size,
		StorageSize:    humanize.Bytes(uint64(size)),
		Version:        data.Version,
	}
	if data.Stats.LastUpdated != nil {
		resp.LastUpdatedHuman = humanize.Time(*data.Stats.LastUpdated)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
