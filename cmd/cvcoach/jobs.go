package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/cvcoach/internal/model"
	"github.com/amishk599/cvcoach/internal/view"
)

var jobsHTML string

var jobsCmd = &cobra.Command{
	Use:       "jobs matching|alternative",
	Short:     "Fetch job suggestions for the last analyzed CV",
	Long:      "Queries the matching or alternative job endpoint once and prints one card per listing.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.SearchMatching), string(model.SearchAlternative)},
	RunE:      runJobs,
}

func init() {
	jobsCmd.Flags().StringVar(&jobsHTML, "html", "", "also write the listings as an HTML fragment to this file")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	kind := model.SearchKind(args[0])
	if !kind.Valid() {
		return fmt.Errorf("unknown search kind %q (want matching or alternative)", args[0])
	}

	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	history, err := setupHistory(cfg, logger)
	if err != nil {
		logger.Error("failed to open history", "error", err)
		os.Exit(1)
	}
	defer history.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := setupClient(cfg)
	console := view.NewConsoleView(os.Stdout, os.Stderr, consoleWidth)
	if jobsHTML != "" {
		console.WithHTMLReport(jobsHTML)
	}
	ctrl := newController(cfg, client, view.Tee{console, view.NewLogView(logger)}, history, logger)

	if err := ctrl.SearchJobs(ctx, kind); err != nil {
		os.Exit(1)
	}
	if err := console.HTMLErr(); err != nil {
		logger.Error("failed to write html report", "error", err)
		os.Exit(1)
	}
	return nil
}
