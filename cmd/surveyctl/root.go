// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Grazulex/survey/cliparse"
	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/storage"
	"github.com/Grazulex/survey/store"
	"github.com/Grazulex/survey/surveydef"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	StorageType string
	StorageURL  string
	SurveyFile  string
	AdminSalt   string
}

// NewRootCommand creates the root command for the survey CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "surveyctl",
		Short: "Inspect and manage stored survey responses",
		Long: `Work with the response store of a survey server from the command line.

Flags fall back to the same environment variables as the server
(STORAGE_TYPE, STORAGE_URL, SURVEY_FILE, ADMIN_KEY_SALT), including
those set in a .env file.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliparse.LoadEnv(); err != nil {
				return err
			}
			opts.fillFromEnv()
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.StorageType, "storage-type", "t", "", "storage type (memory|sqlite|postgres|redis|mongo)")
	cmd.PersistentFlags().StringVarP(&opts.StorageURL, "storage-url", "d", "", "storage connection string")
	cmd.PersistentFlags().StringVarP(&opts.SurveyFile, "survey", "s", "", "survey definition file (default: built-in)")
	cmd.PersistentFlags().StringVar(&opts.AdminSalt, "admin-salt", "", "admin key salt")

	// Add subcommands
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewResultsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewAdminKeyCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

func (o *RootOptions) fillFromEnv() {
	if o.StorageType == "" {
		o.StorageType = os.Getenv("STORAGE_TYPE")
	}
	if o.StorageType == "" {
		o.StorageType = storage.KindSQLite
	}
	if o.StorageURL == "" {
		o.StorageURL = os.Getenv("STORAGE_URL")
	}
	if o.StorageURL == "" && o.StorageType == storage.KindSQLite {
		o.StorageURL = "survey.db"
	}
	if o.SurveyFile == "" {
		o.SurveyFile = os.Getenv("SURVEY_FILE")
	}
	if o.AdminSalt == "" {
		o.AdminSalt = os.Getenv("ADMIN_KEY_SALT")
	}
}

// session is an open response store plus the definition it belongs to.
type session struct {
	survey  *models.Survey
	store   *store.ResponseStore
	backend storage.Backend
}

func (s *session) Close() error {
	return s.backend.Close()
}

func openSession(ctx context.Context, opts *RootOptions) (*session, error) {
	def, err := surveydef.Load(opts.SurveyFile)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(ctx, opts.StorageType, opts.StorageURL, storage.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", opts.StorageType, err)
	}

	return &session{
		survey:  def,
		store:   store.New(backend, def.Storage, def.Questions),
		backend: backend,
	}, nil
}
