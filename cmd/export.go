package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/codetrail/worklog/pkg/export"
	"github.com/codetrail/worklog/pkg/logger"
)

var (
	exportOut    string
	exportSince  string
	exportSource string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the extraction report as a compressed archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		report, err := runExtract(exportSince, "", exportSource)
		if err != nil {
			return err
		}
		if len(report.Sessions) == 0 {
			return fmt.Errorf("no sessions found matching criteria")
		}

		size, err := export.WriteArchive(exportOut, report)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d session(s) to %s (%s)\n",
			len(report.Sessions), exportOut, humanize.Bytes(uint64(size)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output archive path (required)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", `Window start: "yesterday", "today", "week", or "YYYY-MM-DD [HH:MM]"`)
	exportCmd.Flags().StringVar(&exportSource, "source", "all", "Log source: claude, codex, or all")
	exportCmd.MarkFlagRequired("out")
}
