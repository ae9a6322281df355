package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/cvcoach/internal/api"
	"github.com/amishk599/cvcoach/internal/config"
	"github.com/amishk599/cvcoach/internal/controller"
	"github.com/amishk599/cvcoach/internal/model"
	"github.com/amishk599/cvcoach/internal/retry"
	"github.com/amishk599/cvcoach/internal/store"
)

// consoleWidth is the render width for one-shot command output.
const consoleWidth = 80

var (
	cfgPath    string
	debug      bool
	originFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cvcoach",
	Short: "CV analysis client",
	Long:  "cvcoach uploads a PDF CV to the analysis service and shows the extracted profile and job suggestions.",
	// Default to `ui` so that `cvcoach [file.pdf]` opens the interactive client.
	Args:         cobra.MaximumNArgs(1),
	RunE:         runUI,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CVCOACH_CONFIG env var or ./cvcoach.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&originFlag, "origin", "", "backend origin, overrides config and "+config.OriginEnv)
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > CVCOACH_CONFIG env var > "./cvcoach.yaml".
// Only the implicit default may be missing, in which case defaults apply.
func loadConfig(path string) (*config.Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.Load(path)
	case os.Getenv("CVCOACH_CONFIG") != "":
		cfg, err = config.Load(os.Getenv("CVCOACH_CONFIG"))
	default:
		cfg, err = config.LoadOrDefault("cvcoach.yaml")
	}
	if err != nil {
		return nil, err
	}

	if originFlag != "" {
		cfg.Origin = originFlag
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func setupLogger(dbg bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(dbg)}))
}

// setupFileLogger logs to path, or nowhere when path is empty. The TUI owns
// stdout, so it must never log there.
func setupFileLogger(path string, dbg bool) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(dbg)}))
	return logger, f.Close, nil
}

func logLevel(dbg bool) slog.Level {
	if dbg {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func setupClient(cfg *config.Config) *api.Client {
	// Timeout 0 leaves requests bounded only by their context.
	return api.NewClient(cfg.Origin, &http.Client{Timeout: cfg.HTTPTimeout})
}

func setupSearcher(cfg *config.Config, client *api.Client, logger *slog.Logger) model.JobSearcher {
	if cfg.Retry.MaxRetries <= 0 {
		return client
	}
	logger.Debug("job search retries enabled", "max_retries", cfg.Retry.MaxRetries, "base_delay", cfg.Retry.BaseDelay.String())
	return retry.NewRetrySearcher(client, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)
}

// newController wires the flows to v with every config-driven option applied.
func newController(cfg *config.Config, client *api.Client, v controller.View, history model.HistoryStore, logger *slog.Logger) *controller.Controller {
	return controller.New(client, setupSearcher(cfg, client, logger), v, logger,
		controller.WithHistory(history),
		controller.WithErrorDismiss(cfg.ErrorDismiss),
	)
}

// historyStore is a journal that must be closed on exit.
type historyStore interface {
	model.HistoryStore
	Close() error
}

func setupHistory(cfg *config.Config, logger *slog.Logger) (historyStore, error) {
	if !cfg.History.Enabled {
		return store.NewNopStore(), nil
	}
	s, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return nil, err
	}
	if cfg.History.Retention > 0 {
		if err := s.Cleanup(cfg.History.Retention); err != nil {
			logger.Warn("history cleanup failed", "error", err)
		}
	}
	return s, nil
}

// checkHealth checks that the backend answers. It only logs.
func checkHealth(ctx context.Context, client *api.Client, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Health(ctx); err != nil {
		logger.Debug("backend health check failed", "origin", client.Origin(), "error", err)
		return
	}
	logger.Debug("backend reachable", "origin", client.Origin())
}
