// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/handlers"
	"github.com/Grazulex/survey/live"
	"github.com/Grazulex/survey/middleware"
)

func NewRouter(svc handlers.Services, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)
	adminHandler := handlers.NewAdminHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Survey (public, session cookie)
	mux.HandleFunc("GET /survey", middleware.WithLogging(surveyHandler.GetSurvey))
	mux.HandleFunc("GET /survey/session", middleware.WithLogging(surveyHandler.GetSession))
	mux.HandleFunc("POST /survey/check", middleware.WithLogging(surveyHandler.Check))
	mux.HandleFunc("POST /survey/responses", middleware.WithLogging(surveyHandler.Submit))

	// Results (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /results/stats", middleware.WithLogging(resultsHandler.GetStats))
	if svc.Hub != nil {
		liveHandler := live.NewHandler(svc.Hub, svc.LiveSnapshot)
		mux.HandleFunc("GET /results/live", middleware.WithLogging(liveHandler.ServeHTTP))
	}

	// Admin (requires X-Admin-Key)
	mux.HandleFunc("POST /admin/reset", middleware.WithLogging(adminHandler.Reset))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(adminHandler.Export))
	mux.HandleFunc("POST /admin/session/clear", middleware.WithLogging(adminHandler.ClearSession))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("survey API v1"))
	})

	return mux
}
