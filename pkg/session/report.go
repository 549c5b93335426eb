package session

import (
	"sort"
	"time"

	"github.com/codetrail/worklog/pkg/git"
	"github.com/codetrail/worklog/pkg/logger"
)

// CommitLookup resolves source-control commits for a working directory and
// time range. It must degrade to an empty list on failure, never error.
type CommitLookup func(dir string, since, until time.Time) []git.Commit

// BuildReport locates sessions across the given sources, aggregates each,
// correlates commits, and returns the sessions sorted by start time
// (undated sessions first, then session id for determinism).
//
// The locator's mtime check and the aggregator's record-level cutoff are
// intentionally redundant: a file touched after the cutoff whose records
// all predate it is admitted here and then suppressed by Aggregate.
func BuildReport(sources []Source, cutoff *time.Time, filter string, lookup CommitLookup) (*Report, error) {
	report := &Report{
		ExtractedAt: time.Now(),
		Since:       cutoff,
		Sessions:    []*Summary{},
	}

	for _, src := range sources {
		paths, err := src.Sessions(cutoff, filter)
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			sum, err := Aggregate(src, path, cutoff)
			if err != nil {
				// An unreadable file forfeits its own summary only.
				logger.Warn("Skipping %s: %v", path, err)
				continue
			}
			if sum == nil {
				continue
			}

			if lookup != nil && sum.CWD != "" && sum.Started != nil && sum.Ended != nil {
				sum.Commits = lookup(sum.CWD, *sum.Started, *sum.Ended)
				if sum.Commits == nil {
					sum.Commits = []git.Commit{}
				}
			}

			report.Sessions = append(report.Sessions, sum)
		}
	}

	sort.SliceStable(report.Sessions, func(i, j int) bool {
		a, b := report.Sessions[i], report.Sessions[j]
		switch {
		case a.Started == nil && b.Started == nil:
			return a.SessionID < b.SessionID
		case a.Started == nil:
			return true
		case b.Started == nil:
			return false
		case a.Started.Equal(*b.Started):
			return a.SessionID < b.SessionID
		default:
			return a.Started.Before(*b.Started)
		}
	})

	return report, nil
}
