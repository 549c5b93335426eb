package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Summarize your AI coding sessions",
	Long: `Worklog scans the session logs written by Claude Code and Codex,
aggregates each session into a summary (turns, topics, context usage,
commands, files touched, git commits), and renders the result as JSON
or a human-readable recap.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
