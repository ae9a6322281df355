package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/cvcoach/internal/controller"
	"github.com/amishk599/cvcoach/internal/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui [file.pdf]",
	Short: "Open the interactive client (TUI)",
	Long:  "Opens the upload form in the terminal. A file argument is selected on start.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := setupFileLogger(cfg.Log.File, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("config loaded", "origin", cfg.Origin, "history", cfg.History.Enabled)

	history, err := setupHistory(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer history.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := setupClient(cfg)
	go checkHealth(ctx, client, logger)

	var initial string
	if len(args) > 0 {
		initial = args[0]
	}

	build := func(v controller.View) tui.Actions {
		return newController(cfg, client, v, history, logger)
	}
	if err := tui.Run(ctx, build, initial); err != nil {
		logger.Error("tui exited with error", "error", err)
		return err
	}
	return nil
}
