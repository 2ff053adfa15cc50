package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/handlers"
	"github.com/Grazulex/survey/live"
	"github.com/Grazulex/survey/middleware"
	"github.com/Grazulex/survey/router"
	"github.com/Grazulex/survey/session"
	"github.com/Grazulex/survey/storage"
	"github.com/Grazulex/survey/store"
	"github.com/Grazulex/survey/surveydef"
)

func main() {
	var err error

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse configuration
	if err := cliparse.LoadEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Load the survey definition
	def, err := surveydef.Load(cfg.SurveyFile)
	if err != nil {
		slog.Error("survey definition invalid", "file", cfg.SurveyFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Survey loaded", "title", def.Title, "questions", len(def.Questions), "key", def.Storage.Key)

	// Connect to response storage
	responses, err := storage.Open(ctx, cfg.StorageType, cfg.StorageURL, storage.Options{})
	if err != nil {
		slog.Error("response storage connection failed", "type", cfg.StorageType, "error", err)
		os.Exit(1)
	}
	defer responses.Close()
	slog.Info("Response storage ready", "type", cfg.StorageType)

	// Connect to session storage
	sessions, err := storage.Open(ctx, cfg.SessionStore, cfg.SessionURL, storage.Options{
		TTL:    cfg.SessionTTL,
		Prefix: "survey:",
	})
	if err != nil {
		slog.Error("session storage connection failed", "type", cfg.SessionStore, "error", err)
		os.Exit(1)
	}
	defer sessions.Close()
	slog.Info("Session storage ready", "type", cfg.SessionStore, "ttl", cfg.SessionTTL)

	hub := live.NewHub()
	go hub.Run(ctx)

	svc := handlers.Services{
		Survey:    def,
		Responses: store.New(responses, def.Storage, def.Questions),
		Sessions:  session.NewGate(sessions),
		Hub:       hub,
	}

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
