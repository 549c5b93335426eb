// Package render turns extraction reports into human-readable text: the
// markdown recap, the single-session detail view, and list rows.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/codetrail/worklog/pkg/config"
	"github.com/codetrail/worklog/pkg/session"
)

const (
	instantLayout = "Jan 02 15:04"
	dateLayout    = "2006-01-02 15:04"

	maxRecapTopics      = 3
	maxRecapFiles       = 6
	maxRecapCompactions = 3
	maxSummaryTopics    = 3
)

// FormatInstant renders a timestamp in local time, or "unknown" for nil.
func FormatInstant(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Local().Format(instantLayout)
}

// FormatDate renders a timestamp as a full local date, or "unknown" for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Local().Format(dateLayout)
}

// FormatDuration renders the span between two instants as "2h 05m" or
// "45m". Either bound missing yields "unknown".
func FormatDuration(start, end *time.Time) string {
	if start == nil || end == nil {
		return "unknown"
	}
	minutes := int(end.Sub(*start).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	hours, minutes := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Recap writes the markdown recap for a report: a window header, one
// aggregate summary paragraph, then a block per session.
func Recap(w io.Writer, report *session.Report) error {
	header := "all time"
	if report.Since != nil {
		header = fmt.Sprintf("since %s", FormatInstant(report.Since))
	}
	fmt.Fprintf(w, "# Worklog: %s -> %s\n\n", header, report.ExtractedAt.Local().Format(instantLayout))

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryLine(report))

	if len(report.Sessions) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Sessions")
	for _, sum := range report.Sessions {
		fmt.Fprintln(w)
		writeSession(w, sum)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "---")
	}

	return nil
}

// summaryLine condenses the whole report into one paragraph.
func summaryLine(report *session.Report) string {
	if len(report.Sessions) == 0 {
		return "No sessions in this window."
	}

	turns := report.TotalTurns()
	rot, smash := report.ThresholdHits()

	parts := []string{
		fmt.Sprintf("%d session(s) across %d project(s), %d user / %d assistant turns.",
			len(report.Sessions), report.ProjectCount(), turns.User, turns.Assistant),
		fmt.Sprintf("Context stress: %d rot hit(s), %d smash hit(s).", rot, smash),
	}

	var topics []string
	for _, sum := range report.Sessions {
		if len(topics) >= maxSummaryTopics {
			break
		}
		if len(sum.Topics) > 0 {
			topic := session.Shorten(sum.Topics[0], 80)
			if !contains(topics, topic) {
				topics = append(topics, topic)
			}
		}
	}
	if len(topics) > 0 {
		parts = append(parts, "Main topics: "+strings.Join(topics, "; ")+".")
	}

	return strings.Join(parts, " ")
}

// writeSession writes one session's recap block.
func writeSession(w io.Writer, sum *session.Summary) {
	title := sum.Title
	if title == "" {
		title = "(no title)"
	}
	fmt.Fprintf(w, "### %q\n", session.Shorten(title, config.MaxTitleLength))

	project := sum.Project
	if project == "" {
		project = "(no working folder recorded)"
	}
	fmt.Fprintln(w, project)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "- Session: %s (%s)\n", sum.SessionID, sum.Source)
	fmt.Fprintf(w, "- Time: %s -> %s (%s)\n",
		FormatInstant(sum.Started), FormatInstant(sum.Ended), FormatDuration(sum.Started, sum.Ended))
	fmt.Fprintf(w, "- Turns: %d user / %d assistant\n", sum.Turns.User, sum.Turns.Assistant)
	fmt.Fprintf(w, "- Context: %.1f%% (%s tokens)\n", sum.Context.Pct, humanize.Comma(int64(sum.Context.Tokens)))
	fmt.Fprintf(w, "- Context hits: rot %d, smash %d\n", sum.Context.RotHits, sum.Context.SmashHits)

	writeCompactions(w, sum.Compactions)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "What was discussed:")
	for _, bullet := range discussionBullets(sum) {
		fmt.Fprintf(w, "- %s\n", bullet)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Git commits:")
	if len(sum.Commits) == 0 {
		fmt.Fprintln(w, "- None")
		return
	}
	for _, commit := range sum.Commits {
		fmt.Fprintf(w, "- %s %s\n", commit.Hash, commit.Message)
	}
}

func writeCompactions(w io.Writer, compactions []string) {
	if len(compactions) == 0 {
		fmt.Fprintln(w, "- Compaction: none")
		return
	}
	fmt.Fprintf(w, "- Compaction: %d summarization(s)\n", len(compactions))
	for i, text := range compactions {
		if i == maxRecapCompactions {
			fmt.Fprintf(w, "  - ... and %d more\n", len(compactions)-maxRecapCompactions)
			break
		}
		fmt.Fprintf(w, "  - %q\n", session.Shorten(text, 50))
	}
}

// discussionBullets builds the "what was discussed" list: leading topics,
// then touched files, falling back to the first command when the session
// was tool-driven.
func discussionBullets(sum *session.Summary) []string {
	var bullets []string
	for i, topic := range sum.Topics {
		if i == maxRecapTopics {
			break
		}
		bullets = append(bullets, session.Shorten(topic, config.MaxTitleLength))
	}

	if len(sum.FilesTouched) > 0 {
		shown := sum.FilesTouched
		suffix := ""
		if len(shown) > maxRecapFiles {
			shown = shown[:maxRecapFiles]
			suffix = ", ..."
		}
		bullets = append(bullets, "Files touched: "+strings.Join(shown, ", ")+suffix)
	}

	if len(bullets) == 0 && len(sum.Commands) > 0 {
		bullets = append(bullets, "Commands run: "+session.Shorten(sum.Commands[0], config.MaxTitleLength))
	}

	if len(bullets) == 0 {
		bullets = append(bullets, "No user prompts captured; activity was mostly tool-driven.")
	}

	return bullets
}

// Detail writes the single-session stats view.
func Detail(w io.Writer, sum *session.Summary) {
	fmt.Fprintf(w, "Session: %s\n", sum.SessionID)
	fmt.Fprintf(w, "Source:  %s\n", sum.Source)
	fmt.Fprintf(w, "Project: %s\n", sum.Project)
	fmt.Fprintf(w, "Started: %s\n", FormatDate(sum.Started))
	fmt.Fprintf(w, "Last:    %s\n", FormatDate(sum.Ended))
	fmt.Fprintf(w, "Turns:   %d user / %d assistant\n", sum.Turns.User, sum.Turns.Assistant)
	fmt.Fprintf(w, "Context: %.1f%% (%s tokens)\n", sum.Context.Pct, humanize.Comma(int64(sum.Context.Tokens)))
	fmt.Fprintf(w, "Context hits: rot %d, smash %d\n", sum.Context.RotHits, sum.Context.SmashHits)
	if sum.Totals != nil {
		fmt.Fprintf(w, "Tokens:  %s in / %s out / %s cache read\n",
			humanize.Comma(int64(sum.Totals.Input)),
			humanize.Comma(int64(sum.Totals.Output)),
			humanize.Comma(int64(sum.Totals.CacheRead)))
	}
}

// ListRow renders one fixed-width row of the recent-sessions table.
func ListRow(sum *session.Summary) string {
	id := sum.SessionID
	if len(id) > 8 {
		id = id[:8] + "..."
	}
	return fmt.Sprintf("%-11s  %5.1f%%  rot %2d smash %2d  %3du/%3da  %s  %s",
		id, sum.Context.Pct, sum.Context.RotHits, sum.Context.SmashHits,
		sum.Turns.User, sum.Turns.Assistant, FormatInstant(sum.Ended), sum.Project)
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
