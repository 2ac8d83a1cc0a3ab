package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inovacc/upstream/internal/appconfig"
	"github.com/inovacc/upstream/internal/application"
	"github.com/inovacc/upstream/internal/database"
	"github.com/inovacc/upstream/internal/settings"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	jsonLogs bool
)

// Per-process state set up before any command that touches the settings.
var (
	logger  *slog.Logger
	appCfg  *appconfig.Config
	store   database.Store
	manager *settings.Manager
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Configure GitHub-backed update checks",
	Long: `Upstream stores where an artifact's updates come from (a GitHub repository
and an optional access token) and bootstraps the update checker from those
settings.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Write logs as JSON")
}

func setup(cmd *cobra.Command, _ []string) error {
	// A failed command skips the post-run hook.
	teardown()

	dir, err := application.EnsureApplicationDirectory()
	if err != nil {
		return err
	}

	cfg, err := appconfig.Load(dir)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}

	logger = newLogger(cmd.ErrOrStderr(), level, jsonLogs || cfg.Log.JSON())
	slog.SetDefault(logger)

	st, err := database.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}

	logger.Debug("settings store opened",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path),
	)

	appCfg = cfg
	store = st
	manager = settings.NewManager(st, logger)

	return nil
}

func teardown() {
	if store == nil {
		return
	}

	if err := store.Close(); err != nil && logger != nil {
		logger.Warn("failed to close settings store", slog.Any("error", err))
	}

	store = nil
	manager = nil
}

func newLogger(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
