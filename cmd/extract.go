package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codetrail/worklog/pkg/git"
	"github.com/codetrail/worklog/pkg/logger"
	"github.com/codetrail/worklog/pkg/session"
)

var (
	extractSince   string
	extractSession string
	extractSource  string
	extractPretty  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract session summaries as JSON",
	Long: `Scans the session logs, aggregates each matching session, and prints
the report as JSON. Failures print an error-shaped JSON object and exit 1
so callers can pipe the output unconditionally.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.Init()
		defer logger.Close()

		report, err := runExtract(extractSince, extractSession, extractSource)
		if err != nil {
			failJSON(err)
		}
		if len(report.Sessions) == 0 {
			if extractSession != "" {
				failJSON(fmt.Errorf("session %s not found", extractSession))
			}
			failJSON(fmt.Errorf("no sessions found matching criteria"))
		}

		encoder := json.NewEncoder(os.Stdout)
		if extractPretty {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(report); err != nil {
			failJSON(fmt.Errorf("failed to encode report: %w", err))
		}
	},
}

// runExtract is the shared scan pipeline behind extract, recap, and export.
func runExtract(since, sessionID, source string) (*session.Report, error) {
	sources, err := buildSources(source)
	if err != nil {
		return nil, err
	}
	cutoff, err := resolveCutoff(since, sessionID)
	if err != nil {
		return nil, err
	}
	return session.BuildReport(sources, cutoff, sessionID, git.CommitsBetween)
}

// failJSON prints an error-shaped JSON object and exits non-zero.
func failJSON(err error) {
	logger.Error("Extract failed: %v", err)
	json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractSince, "since", "", `Window start: "yesterday", "today", "week", or "YYYY-MM-DD [HH:MM]"`)
	extractCmd.Flags().StringVar(&extractSession, "session", "", "Extract a specific session by id")
	extractCmd.Flags().StringVar(&extractSource, "source", "all", "Log source: claude, codex, or all")
	extractCmd.Flags().BoolVar(&extractPretty, "pretty", false, "Indent the JSON output")
}
