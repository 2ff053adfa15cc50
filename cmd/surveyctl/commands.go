// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Grazulex/survey/auth"
	"github.com/Grazulex/survey/models"
	"github.com/Grazulex/survey/results"
	"github.com/Grazulex/survey/store"
	"github.com/Grazulex/survey/surveydef"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "stats",
		Short:        "Show the response count and store size",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			data, err := sess.store.Load(cmd.Context())
			if err != nil {
				return err
			}
			size, err := sess.store.Size(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Survey:    %s\n", sess.survey.Title)
			fmt.Fprintf(out, "Key:       %s (version %s)\n", sess.store.Key(), data.Version)
			fmt.Fprintf(out, "Responses: %s\n", humanize.Comma(int64(data.Stats.TotalResponses)))
			if data.Stats.LastUpdated != nil {
				fmt.Fprintf(out, "Updated:   %s\n", humanize.Time(*data.Stats.LastUpdated))
			} else {
				fmt.Fprintln(out, "Updated:   never")
			}
			fmt.Fprintf(out, "Size:      %s\n", humanize.Bytes(uint64(size)))
			return nil
		},
	}
}

// NewResultsCommand creates the results command.
func NewResultsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "results",
		Short:        "Print per-option counts for every question",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			responses, err := sess.store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, q := range results.Summarize(sess.survey.Questions, responses) {
				fmt.Fprintf(out, "%s  %s\n", q.QuestionID, q.Text)
				for _, c := range q.Counts {
					fmt.Fprintf(out, "  %-40s %5d  %5.1f%%\n", c.Text, c.Count, c.Percentage)
				}
			}
			return nil
		},
	}
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every response to a JSON or CSV file",
		Long: `Write every response to a JSON or CSV file.

Without --output the file is named survey-data-<unix ms>.<format> in the
current directory. Use --output - to write to stdout.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := models.Format(format)
			if f != models.FormatJSON && f != models.FormatCSV {
				return fmt.Errorf("invalid format %q: must be json or csv", format)
			}

			sess, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			data, err := sess.store.Export(cmd.Context(), f)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = store.FileName(f, time.Now())
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", output, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(models.FormatJSON), "export format (json|csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout")

	return cmd
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:          "reset",
		Short:        "Delete every stored response",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes every response; rerun with --yes to confirm")
			}

			sess, err := openSession(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", sess.store.Key())
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	return cmd
}

// NewAdminKeyCommand creates the admin-key command.
func NewAdminKeyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "admin-key",
		Short:        "Print the X-Admin-Key for the configured survey",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.AdminSalt == "" {
				return errors.New("admin salt required (use --admin-salt or ADMIN_KEY_SALT env)")
			}

			def, err := surveydef.Load(rootOpts.SurveyFile)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), auth.GenerateAdminKey(def.Storage.Key, rootOpts.AdminSalt))
			return nil
		},
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "validate [survey-file]",
		Short:        "Check a survey definition",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.SurveyFile
			if len(args) == 1 {
				path = args[0]
			}

			def, err := surveydef.Load(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions, stored under %s\n", def.Title, len(def.Questions), def.Storage.Key)
			return nil
		},
	}
}
