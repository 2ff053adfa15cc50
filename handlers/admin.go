// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Grazulex/survey/auth"
	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/live"
	"github.com/Grazulex/survey/middleware"
	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/session"
	"github.com/Grazulex/survey/store"
)

type AdminHandler struct {
	svc Services
	cfg cliparse.Config
	now func() time.Time
}

func NewAdminHandler(svc Services, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{svc: svc, cfg: cfg, now: time.Now}
}

// authorize checks the X-Admin-Key header and writes 401 when it is wrong
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if adminKey == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
		return false
	}

	if err := auth.ValidateAdminKey(h.svc.Responses.Key(), adminKey, h.cfg.AdminKeySalt); err != nil {
		slog.Warn("rejected admin request", "path", r.URL.Path, "client", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// Reset handles POST /admin/reset
// Irreversibly empties the response store
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if err := h.svc.Responses.Reset(r.Context()); err != nil {
		slog.Error("failed to reset store", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	h.svc.notify(r.Context(), live.MsgStoreReset)

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message: "All survey data has been cleared",
	})
}

// Export handles GET /admin/export?format=json|csv
// Streams a full dump as a file download
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	format := models.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = models.FormatJSON
	}
	if format != models.FormatJSON && format != models.FormatCSV {
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	data, err := h.svc.Responses.Export(r.Context(), format)
	if err != nil {
		slog.Error("failed to export store", "format", format, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	name := store.FileName(format, h.now())
	w.Header().Set("Content-Type", store.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
		return
	}

	slog.Info("data exported", "format", format, "file", name, "bytes", len(data))
}

// ClearSession handles POST /admin/session/clear
// Lets the caller's own session vote again
func (h *AdminHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	sessionID, isNew, err := session.FromRequest(w, r)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	if !isNew {
		if err := h.svc.Sessions.Clear(r.Context(), sessionID); err != nil {
			slog.Error("failed to clear session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Session storage error")
			return
		}
	}

	slog.Info("session vote cleared", "session", auth.HashSessionID(sessionID, h.cfg.AdminKeySalt))
	middleware.JSONResponse(w, http.StatusOK, models.SessionVoteFlag{})
}
