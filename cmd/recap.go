package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codetrail/worklog/pkg/logger"
	"github.com/codetrail/worklog/pkg/render"
)

var (
	recapSince   string
	recapSession string
	recapSource  string
	recapJSON    bool
)

var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Render a human-readable recap of recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		report, err := runExtract(recapSince, recapSession, recapSource)
		if err != nil {
			return err
		}
		if len(report.Sessions) == 0 {
			return fmt.Errorf("no sessions found matching criteria")
		}

		if recapJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		}
		return render.Recap(os.Stdout, report)
	},
}

func init() {
	rootCmd.AddCommand(recapCmd)
	recapCmd.Flags().StringVar(&recapSince, "since", "", `Window start: "yesterday", "today", "week", or "YYYY-MM-DD [HH:MM]"`)
	recapCmd.Flags().StringVar(&recapSession, "session", "", "Recap a specific session by id")
	recapCmd.Flags().StringVar(&recapSource, "source", "all", "Log source: claude, codex, or all")
	recapCmd.Flags().BoolVar(&recapJSON, "json", false, "Emit the JSON report instead of markdown")
}
