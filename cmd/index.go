package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codetrail/worklog/pkg/config"
	"github.com/codetrail/worklog/pkg/logger"
	"github.com/codetrail/worklog/pkg/render"
	"github.com/codetrail/worklog/pkg/session"
	"github.com/codetrail/worklog/pkg/store"
)

var (
	indexDays   int
	indexSource string
	indexList   bool
	indexLimit  int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild or list the local session index",
	Long: `Scans sessions modified in the lookback window, aggregates each one in
full, and upserts the summaries into the SQLite index under ~/.worklog.
With --list, serves recent sessions from the index instead of rescanning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		if indexList {
			return listIndexedSessions(os.Stdout, indexLimit)
		}

		sources, err := buildSources(indexSource)
		if err != nil {
			return err
		}

		worklogDir, err := config.GetWorklogDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(worklogDir, 0755); err != nil {
			return fmt.Errorf("failed to create worklog directory: %w", err)
		}
		indexPath, err := config.GetIndexPath()
		if err != nil {
			return err
		}

		db, err := store.Open(indexPath)
		if err != nil {
			return err
		}
		defer db.Close()

		// The lookback bounds which files get rescanned; each matched
		// session is aggregated in full so the indexed row is complete.
		modifiedSince := time.Now().AddDate(0, 0, -indexDays)

		indexed := 0
		for _, src := range sources {
			paths, err := src.Sessions(&modifiedSince, "")
			if err != nil {
				logger.Warn("Failed to list %s sessions: %v", src.Name(), err)
				continue
			}
			for _, path := range paths {
				sum, err := session.Aggregate(src, path, nil)
				if err != nil {
					logger.Warn("Failed to aggregate %s: %v", path, err)
					continue
				}
				if sum == nil {
					continue
				}
				if err := db.Upsert(sum); err != nil {
					return fmt.Errorf("failed to index session %s: %w", sum.SessionID, err)
				}
				indexed++
			}
		}

		total, err := db.Count()
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d session(s); %d total in %s\n", indexed, total, indexPath)
		return nil
	},
}

// listIndexedSessions prints recent rows straight from the index, most
// recently ended first, without touching the log files.
func listIndexedSessions(w io.Writer, limit int) error {
	indexPath, err := config.GetIndexPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(indexPath); err != nil {
		return fmt.Errorf("no session index at %s (run 'worklog index' first)", indexPath)
	}

	db, err := store.Open(indexPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sums, err := db.Recent(limit)
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		return fmt.Errorf("session index is empty (run 'worklog index' first)")
	}

	for _, sum := range sums {
		fmt.Fprintln(w, render.ListRow(sum))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().IntVar(&indexDays, "days", 30, "Reindex sessions modified this many days back")
	indexCmd.Flags().StringVar(&indexSource, "source", "all", "Log source: claude, codex, or all")
	indexCmd.Flags().BoolVar(&indexList, "list", false, "List recent sessions from the index")
	indexCmd.Flags().IntVar(&indexLimit, "limit", 20, "Maximum rows to list with --list")
}
