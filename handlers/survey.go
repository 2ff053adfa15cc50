// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Grazulex/survey/auth"
	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/live"
	"github.com/Grazulex/survey/middleware"
	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/session"
	"github.com/Grazulex/survey/store"
	"github.com/Grazulex/survey/validate"
)

// ResultsURL is where a session that already voted is sent.
const ResultsURL = "/results"

type SurveyHandler struct {
	svc Services
	cfg cliparse.Config
	now func() time.Time
}

func NewSurveyHandler(svc Services, cfg cliparse.Config) *SurveyHandler {
	return &SurveyHandler{svc: svc, cfg: cfg, now: time.Now}
}

// GetSurvey handles GET /survey
// Returns the survey definition and starts a session if needed
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	if _, _, err := session.FromRequest(w, r); err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	def := h.svc.Survey
	middleware.JSONResponse(w, http.StatusOK, models.SurveyResponse{
		Title:       def.Title,
		Subtitle:    def.Subtitle,
		Description: def.Description,
		Questions:   def.Questions,
		Messages:    def.Messages,
	})
}

// GetSession handles GET /survey/session
// Reports whether the caller's session already voted
func (h *SurveyHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, isNew, err := session.FromRequest(w, r)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}

	if isNew {
		middleware.JSONResponse(w, http.StatusOK, models.SessionVoteFlag{})
		return
	}

	flag, err := h.svc.Sessions.Flag(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to read session state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Session storage error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, flag)
}

// Check handles POST /survey/check
// Validates answers without saving them, for inline errors and the progress bar
func (h *SurveyHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	def := h.svc.Survey
	middleware.JSONResponse(w, http.StatusOK, models.CheckResponse{
		ValidationResult: validate.All(def.Questions, req.Answers, def.Messages),
		Progress:         validate.Progress(def.Questions, req.Answers),
	})
}

// Submit handles POST /survey/responses
// One submission per session: the gate is claimed before anything is validated
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	def := h.svc.Survey

	sessionID, _, err := session.FromRequest(w, r)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	sessionHash := auth.HashSessionID(sessionID, h.cfg.AdminKeySalt)

	// Concurrent submissions of one session wait here until the first finishes
	release, allowed, err := h.svc.Sessions.Claim(ctx, sessionID)
	defer release()
	if err != nil {
		slog.Error("failed to read session state", "session", sessionHash, "error", err)
		h.persistenceError(w)
		return
	}
	if !allowed {
		resp := models.AlreadyVotedResponse{
			Error:      "already_voted",
			Message:    def.Messages.AlreadyVoted,
			Details:    def.Messages.AlreadyVotedInfo,
			ResultsURL: ResultsURL,
		}
		if flag, err := h.svc.Sessions.Flag(ctx, sessionID); err == nil {
			resp.VotedAt = flag.VotedAt
		}
		slog.Info("duplicate submission blocked", "session", sessionHash)
		middleware.JSONResponse(w, http.StatusConflict, resp)
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result := validate.All(def.Questions, req.Answers, def.Messages)
	if !result.IsValid {
		middleware.JSONResponse(w, http.StatusBadRequest, models.ValidationErrorResponse{
			Error:   "validation_failed",
			Message: def.Messages.IncompleteForm,
			Errors:  result.Errors,
		})
		return
	}

	if errs := validate.Options(def.Questions, req.Answers); len(errs) > 0 {
		middleware.JSONResponse(w, http.StatusBadRequest, models.ValidationErrorResponse{
			Error:   "invalid_answers",
			Message: "Answers must use the survey's questions and options",
			Errors:  errs,
		})
		return
	}

	if req.Answers == nil {
		req.Answers = map[string]models.Answer{}
	}

	resp := models.Response{
		ID:        uuid.NewString(),
		Timestamp: h.now().UTC().Truncate(time.Millisecond),
		Answers:   req.Answers,
	}

	if err := h.svc.Responses.Append(ctx, resp); err != nil {
		var perr *store.PersistenceError
		if errors.As(err, &perr) {
			slog.Error("failed to save response", "op", perr.Op, "session", sessionHash, "error", perr.Err)
		} else {
			slog.Error("failed to save response", "session", sessionHash, "error", err)
		}
		h.persistenceError(w)
		return
	}

	// The response is counted; a failed mark only means the session may vote again
	if err := h.svc.Sessions.MarkVoted(ctx, sessionID); err != nil {
		slog.Error("failed to mark session voted", "session", sessionHash, "response_id", resp.ID, "error", err)
	}

	h.svc.notify(ctx, live.MsgResultsUpdate)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: resp.ID,
		Message:    def.Messages.Success,
		Details:    def.Messages.SuccessDetails,
	})
}

func (h *SurveyHandler) persistenceError(w http.ResponseWriter) {
	msgs := h.svc.Survey.Messages
	middleware.JSONResponse(w, http.StatusInternalServerError, models.ErrorResponse{
		Error:   msgs.Error,
		Message: msgs.ErrorDetails,
	})
}
