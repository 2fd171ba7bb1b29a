package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"SurveyMonitor/internal/app"
	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/logging"
	"SurveyMonitor/internal/usecase"
)

var (
	cfg         config.Config
	logger      *slog.Logger
	application *app.Application

	logLevel string
	addr     string

	summaryOnly bool

	askLGA    string
	askStatus string
	askFlags  []string
	askStart  string
	askEnd    string
)

var rootCmd = &cobra.Command{
	Use:          "surveymonitor",
	Short:        "Survey submission monitoring dashboard",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}
		logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)

		var err error
		application, err = app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("init application: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and refresh it on the configured schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("starting survey monitor",
			"addr", cfg.Server.Addr,
			"sheet", cfg.Sheet.Name,
			"cron", cfg.Refresh.CronExpression)
		return application.Serve(cmd.Context())
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Compute one dashboard snapshot and print it as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := application.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if summaryOnly {
			return enc.Encode(snap.Data.Summary)
		}
		return enc.Encode(snap)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the analysis model a question about the current data",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := usecase.AnalysisFilter{Status: askStatus, QCFlags: askFlags}

		loc := cfg.Dashboard.Location()
		var err error
		if filter.Start, err = parseDate(askStart, loc); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
		if filter.End, err = parseDate(askEnd, loc); err != nil {
			return fmt.Errorf("--end: %w", err)
		}

		answer, err := application.Ask(cmd.Context(), strings.Join(args, " "), askLGA, filter)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
		return err
	},
}

func parseDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(raw, loc)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.SetErr(os.Stderr)

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address override")

	snapshotCmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the summary block")

	askCmd.Flags().StringVar(&askLGA, "lga", "", "restrict to one LGA")
	askCmd.Flags().StringVar(&askStatus, "status", usecase.StatusAll, "submission status filter")
	askCmd.Flags().StringSliceVar(&askFlags, "flag", nil, "QC flag filter; any listed flag matches")
	askCmd.Flags().StringVar(&askStart, "start", "", "earliest submission time")
	askCmd.Flags().StringVar(&askEnd, "end", "", "latest submission time")

	rootCmd.AddCommand(serveCmd, snapshotCmd, askCmd)
}
