package render

import (
	"strings"
	"testing"
	"time"

	"github.com/codetrail/worklog/pkg/git"
	"github.com/codetrail/worklog/pkg/session"
)

func tsPtr(t time.Time) *time.Time { return &t }

func sampleSummary() *session.Summary {
	started := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	ended := time.Date(2026, 1, 15, 11, 5, 0, 0, time.UTC)
	return &session.Summary{
		SessionID:    "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		Source:       "claude",
		Project:      "~/proj",
		Title:        "fix the login flow",
		Started:      &started,
		Ended:        &ended,
		Turns:        session.Turns{User: 4, Assistant: 5},
		Topics:       []string{"fix the login flow", "add tests for it"},
		FilesTouched: []string{"auth.go", "auth_test.go"},
		Compactions:  []string{"discussed login flow"},
		Context: session.ContextInfo{
			Pct:     42.5,
			Tokens:  85000,
			Window:  200000,
			RotHits: 1,
		},
		Commits: []git.Commit{{Hash: "abcd1234", Message: "fix login redirect", Date: "2026-01-15 10:30:00 +0000"}},
	}
}

func TestFormatDuration(t *testing.T) {
	base := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  string
	}{
		{"hours and minutes", tsPtr(base), tsPtr(base.Add(2*time.Hour + 5*time.Minute)), "2h 05m"},
		{"minutes only", tsPtr(base), tsPtr(base.Add(45 * time.Minute)), "45m"},
		{"zero", tsPtr(base), tsPtr(base), "0m"},
		{"missing start", nil, tsPtr(base), "unknown"},
		{"missing end", tsPtr(base), nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.start, tt.end); got != tt.want {
				t.Errorf("FormatDuration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatInstant_Nil(t *testing.T) {
	if got := FormatInstant(nil); got != "unknown" {
		t.Errorf("FormatInstant(nil) = %q, want unknown", got)
	}
	if got := FormatDate(nil); got != "unknown" {
		t.Errorf("FormatDate(nil) = %q, want unknown", got)
	}
}

func TestRecap(t *testing.T) {
	since := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	report := &session.Report{
		ExtractedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		Since:       &since,
		Sessions:    []*session.Summary{sampleSummary()},
	}

	var buf strings.Builder
	if err := Recap(&buf, report); err != nil {
		t.Fatalf("Recap() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Worklog: since",
		"## Summary",
		"1 session(s) across 1 project(s), 4 user / 5 assistant turns.",
		"Context stress: 1 rot hit(s), 0 smash hit(s).",
		"Main topics: fix the login flow.",
		"## Sessions",
		`### "fix the login flow"`,
		"~/proj",
		"- Session: 3f2504e0-4f89-41d3-9a0c-0305e82c3301 (claude)",
		"- Turns: 4 user / 5 assistant",
		"- Context: 42.5% (85,000 tokens)",
		"- Context hits: rot 1, smash 0",
		"- Compaction: 1 summarization(s)",
		`  - "discussed login flow"`,
		"What was discussed:",
		"- Files touched: auth.go, auth_test.go",
		"Git commits:",
		"- abcd1234 fix login redirect",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("recap missing %q\noutput:\n%s", want, out)
		}
	}
}

func TestRecap_EmptyReport(t *testing.T) {
	report := &session.Report{ExtractedAt: time.Now()}

	var buf strings.Builder
	if err := Recap(&buf, report); err != nil {
		t.Fatalf("Recap() error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "No sessions in this window.") {
		t.Errorf("empty recap missing placeholder, got:\n%s", out)
	}
	if !strings.Contains(out, "all time") {
		t.Errorf("nil-since recap should read %q, got:\n%s", "all time", out)
	}
	if strings.Contains(out, "## Sessions") {
		t.Errorf("empty recap should not have a sessions section:\n%s", out)
	}
}

func TestRecap_ToolDrivenSession(t *testing.T) {
	sum := sampleSummary()
	sum.Topics = nil
	sum.FilesTouched = nil
	sum.Commands = []string{"go test ./..."}
	sum.Commits = nil

	var buf strings.Builder
	writeSession(&buf, sum)
	out := buf.String()

	if !strings.Contains(out, "- Commands run: go test ./...") {
		t.Errorf("expected command fallback bullet:\n%s", out)
	}
	if !strings.Contains(out, "- None") {
		t.Errorf("expected empty commits placeholder:\n%s", out)
	}

	sum.Commands = nil
	buf.Reset()
	writeSession(&buf, sum)
	if !strings.Contains(buf.String(), "No user prompts captured") {
		t.Errorf("expected tool-driven placeholder:\n%s", buf.String())
	}
}

func TestRecap_CompactionOverflow(t *testing.T) {
	var buf strings.Builder
	writeCompactions(&buf, []string{"one", "two", "three", "four", "five"})
	out := buf.String()

	if !strings.Contains(out, "5 summarization(s)") {
		t.Errorf("missing count:\n%s", out)
	}
	if !strings.Contains(out, "... and 2 more") {
		t.Errorf("missing overflow marker:\n%s", out)
	}
	if strings.Contains(out, `"four"`) {
		t.Errorf("overflow entries should be elided:\n%s", out)
	}
}

func TestListRow(t *testing.T) {
	row := ListRow(sampleSummary())

	if !strings.HasPrefix(row, "3f2504e0...") {
		t.Errorf("row should start with the shortened id: %q", row)
	}
	for _, want := range []string{"42.5%", "rot  1", "4u/  5a", "~/proj"} {
		if !strings.Contains(row, want) {
			t.Errorf("row missing %q: %q", want, row)
		}
	}
}

func TestDetail(t *testing.T) {
	sum := sampleSummary()
	sum.Totals = &session.TokenTotals{Input: 123456, Output: 7890, CacheRead: 1000}

	var buf strings.Builder
	Detail(&buf, sum)
	out := buf.String()

	for _, want := range []string{
		"Session: 3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"Source:  claude",
		"Turns:   4 user / 5 assistant",
		"Context: 42.5% (85,000 tokens)",
		"Tokens:  123,456 in / 7,890 out / 1,000 cache read",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}
