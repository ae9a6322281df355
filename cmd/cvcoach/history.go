package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/cvcoach/internal/model"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent uploads and job searches",
	Long:  "Reads the local attempt journal and prints the most recent entries, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.History.Enabled {
		fmt.Println("History is disabled (history.enabled: false).")
		return nil
	}

	history, err := setupHistory(cfg, setupLogger(debug))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer history.Close()

	attempts, err := history.Recent(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read history: %v\n", err)
		os.Exit(1)
	}
	if len(attempts) == 0 {
		fmt.Println("No attempts recorded yet.")
		return nil
	}
	printAttempts(attempts)
	return nil
}

func printAttempts(attempts []model.Attempt) {
	fmt.Printf("%-17s %-12s %-7s %-25s %s\n", "When", "Flow", "Status", "File", "Details")
	fmt.Println(strings.Repeat("─", 80))

	for _, a := range attempts {
		status := "ok"
		if !a.OK {
			status = "failed"
		}
		details := a.Message
		if a.OK && a.Results > 0 {
			details = fmt.Sprintf("%d listings", a.Results)
		}
		file := a.FileName
		if file == "" {
			file = "-"
		}
		fmt.Printf("%-17s %-12s %-7s %-25s %s\n", a.At.Local().Format("2006-01-02 15:04"), a.Flow, status, file, details)
	}
}
