package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/cvcoach/internal/view"
)

var analyzeHTML string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "Upload a CV once and print the analysis",
	Long:  "Validates the file, uploads it for analysis and prints the extracted profile. Exits 1 on any failure.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeHTML, "html", "", "also write the result as an HTML fragment to this file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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
	checkHealth(ctx, client, logger)

	console := view.NewConsoleView(os.Stdout, os.Stderr, consoleWidth)
	if analyzeHTML != "" {
		console.WithHTMLReport(analyzeHTML)
	}
	ctrl := newController(cfg, client, view.Tee{console, view.NewLogView(logger)}, history, logger)

	if err := ctrl.SelectFile(args[0]); err != nil {
		os.Exit(1)
	}
	if err := ctrl.Submit(ctx); err != nil {
		os.Exit(1)
	}
	if err := console.HTMLErr(); err != nil {
		logger.Error("failed to write html report", "error", err)
		os.Exit(1)
	}
	return nil
}
