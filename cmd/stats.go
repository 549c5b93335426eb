package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codetrail/worklog/pkg/git"
	"github.com/codetrail/worklog/pkg/logger"
	"github.com/codetrail/worklog/pkg/render"
	"github.com/codetrail/worklog/pkg/session"
)

var (
	statsList   bool
	statsToday  bool
	statsDays   int
	statsSource string
)

var statsCmd = &cobra.Command{
	Use:   "stats [SESSION_ID]",
	Short: "Quick per-session stats or a recent-session table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		defer logger.Close()

		if statsList || statsToday {
			days := statsDays
			if statsToday {
				days = 1
			}
			return listRecentSessions(days)
		}

		if len(args) == 0 {
			cmd.Help()
			return fmt.Errorf("session id required (or use --list)")
		}
		return showSessionStats(args[0])
	},
}

func showSessionStats(sessionID string) error {
	sources, err := buildSources(statsSource)
	if err != nil {
		return err
	}

	report, err := session.BuildReport(sources, nil, sessionID, git.CommitsBetween)
	if err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}

	for i, sum := range report.Sessions {
		if i > 0 {
			fmt.Println()
		}
		render.Detail(os.Stdout, sum)
	}
	return nil
}

func listRecentSessions(days int) error {
	sources, err := buildSources(statsSource)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	report, err := session.BuildReport(sources, &cutoff, "", nil)
	if err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return fmt.Errorf("no sessions found in the last %d day(s)", days)
	}

	// Most recently active first.
	sums := report.Sessions
	sort.SliceStable(sums, func(i, j int) bool {
		switch {
		case sums[i].Ended == nil:
			return false
		case sums[j].Ended == nil:
			return true
		default:
			return sums[i].Ended.After(*sums[j].Ended)
		}
	})

	width := 0
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	fmt.Printf("Sessions from last %d day(s):\n\n", days)
	for _, sum := range sums {
		row := render.ListRow(sum)
		if width > 0 {
			row = truncateWidth(row, width)
		}
		fmt.Println(row)
	}
	return nil
}

// truncateWidth cuts a row to at most width runes without splitting one;
// project paths can carry multibyte characters.
func truncateWidth(row string, width int) string {
	runes := []rune(row)
	if len(runes) <= width {
		return row
	}
	return string(runes[:width])
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsList, "list", false, "List recent sessions")
	statsCmd.Flags().BoolVar(&statsToday, "today", false, "List today's sessions")
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Days to look back with --list")
	statsCmd.Flags().StringVar(&statsSource, "source", "all", "Log source: claude, codex, or all")
}
