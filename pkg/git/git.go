// Package git correlates sessions with source-control commits.
package git

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/codetrail/worklog/pkg/config"
)

// Commit is one correlated commit, as reported by git log.
type Commit struct {
	Hash    string `json:"hash"`    // first 8 hex characters
	Message string `json:"message"` // subject line
	Date    string `json:"date"`    // author date as formatted by git
}

// gitTimeLayout is the timestamp format git accepts for --since/--until.
const gitTimeLayout = "2006-01-02 15:04:05"

// CommitsBetween lists commits made in dir between since and until,
// inclusive, across all refs. It returns an empty list - never an error -
// when dir is absent or missing, the subprocess fails or times out, or the
// output cannot be parsed. Commit correlation is best-effort decoration of
// a summary and must not abort it.
func CommitsBetween(dir string, since, until time.Time) []Commit {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.GitLogTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log",
		"--since="+since.Local().Format(gitTimeLayout),
		"--until="+until.Local().Format(gitTimeLayout),
		"--format=%H|%s|%ai",
		"--all",
	)
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return nil
	}

	return parseCommits(string(output))
}

// parseCommits parses one hash|subject|author-date record per line.
// Lines that do not split into at least 3 fields are skipped.
func parseCommits(output string) []Commit {
	var commits []Commit
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 3 {
			continue
		}
		hash := parts[0]
		if len(hash) > 8 {
			hash = hash[:8]
		}
		commits = append(commits, Commit{
			Hash:    hash,
			Message: parts[1],
			Date:    parts[2],
		})
	}
	return commits
}
