package cmd

import (
	"fmt"
	"time"

	"github.com/codetrail/worklog/pkg/claude"
	"github.com/codetrail/worklog/pkg/codex"
	"github.com/codetrail/worklog/pkg/session"
	"github.com/codetrail/worklog/pkg/timeutil"
)

// buildSources resolves the --source flag to the adapters to scan.
func buildSources(name string) ([]session.Source, error) {
	var sources []session.Source

	if name == "claude" || name == "all" {
		src, err := claude.NewSource()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize claude source: %w", err)
		}
		sources = append(sources, src)
	}
	if name == "codex" || name == "all" {
		src, err := codex.NewSource()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize codex source: %w", err)
		}
		sources = append(sources, src)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("unknown source %q (use claude, codex, or all)", name)
	}
	return sources, nil
}

// resolveCutoff turns the --since / --session flag pair into the scan
// cutoff. A session lookup gets no implicit cutoff, but an explicit
// --since still applies; window scans resolve the time expression
// (empty means yesterday 08:00).
func resolveCutoff(since, sessionID string) (*time.Time, error) {
	if sessionID != "" && since == "" {
		return nil, nil
	}
	cutoff, err := timeutil.ResolveSince(since)
	if err != nil {
		return nil, err
	}
	return &cutoff, nil
}
