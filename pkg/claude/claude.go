// Package claude adapts Claude Code session transcripts to the normalized
// event stream.
//
// Transcripts live under ~/.claude/projects/<encoded-project>/<uuid>.jsonl.
// The project subdirectory name encodes the working directory: the user's
// home prefix with slashes replaced by dashes, so "-Users-alex-foo-bar"
// decodes to "~/foo/bar" and a doubled dash after the home prefix marks a
// dot-directory ("-Users-alex--claude" decodes to "~/.claude").
package claude

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codetrail/worklog/pkg/config"
	"github.com/codetrail/worklog/pkg/session"
	"github.com/codetrail/worklog/pkg/timeutil"
)

// Source reads Claude Code transcripts.
type Source struct {
	projectsDir string
	homePrefix  string // encoded home directory, e.g. "-Users-alex-"
}

// NewSource builds a Source against the configured projects directory.
func NewSource() (*Source, error) {
	projectsDir, err := config.GetClaudeProjectsDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get projects directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewSourceAt(projectsDir, home), nil
}

// NewSourceAt builds a Source against explicit directories. Tests use this
// to point at fixture trees.
func NewSourceAt(projectsDir, home string) *Source {
	return &Source{
		projectsDir: projectsDir,
		homePrefix:  encodeHomePrefix(home),
	}
}

// encodeHomePrefix converts a home path to its project-dir encoding:
// "/Users/alex" becomes "-Users-alex-".
func encodeHomePrefix(home string) string {
	trimmed := strings.TrimSuffix(home, "/")
	return strings.ReplaceAll(trimmed, "/", "-") + "-"
}

// Name implements session.Source.
func (s *Source) Name() string { return "claude" }

// ContextWindow implements session.Source. Claude transcripts do not carry
// the window size, so a fixed model window is assumed.
func (s *Source) ContextWindow() int { return config.DefaultContextWindow }

// Sessions walks one level of project subdirectories and returns transcript
// paths. Sub-agent sidechains ("agent-*.jsonl", anything under a subagents
// path) are excluded. A filter matches the session id (file stem) exactly.
func (s *Source) Sessions(since *time.Time, filter string) ([]string, error) {
	projects, err := os.ReadDir(s.projectsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	var paths []string
	for _, project := range projects {
		if !project.IsDir() {
			continue
		}

		projectDir := filepath.Join(s.projectsDir, project.Name())
		entries, err := os.ReadDir(projectDir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".jsonl") {
				continue
			}
			path := filepath.Join(projectDir, name)
			if strings.Contains(path, "subagents") || strings.HasPrefix(name, "agent-") {
				continue
			}

			stem := strings.TrimSuffix(name, ".jsonl")
			if len(stem) != config.UUIDLength {
				continue
			}
			if _, err := uuid.Parse(stem); err != nil {
				continue
			}

			if filter != "" && stem != filter {
				continue
			}

			if since != nil {
				info, err := entry.Info()
				if err != nil {
					continue
				}
				if info.ModTime().Before(*since) {
					continue
				}
			}

			paths = append(paths, path)
		}
	}

	return paths, nil
}

// SessionID implements session.Source: the file stem is the session id.
func (s *Source) SessionID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// Project implements session.Source by decoding the transcript's parent
// directory name. The recorded cwd is not needed for this convention.
func (s *Source) Project(path, cwd string) string {
	return s.decodeProjectDir(filepath.Base(filepath.Dir(path)))
}

// decodeProjectDir converts an encoded directory name to a readable path.
func (s *Source) decodeProjectDir(dirName string) string {
	if !strings.HasPrefix(dirName, s.homePrefix) {
		return dirName
	}
	rest := dirName[len(s.homePrefix):]
	// A leading dash after the home prefix marks a hidden directory.
	if strings.HasPrefix(rest, "-") {
		rest = "." + rest[1:]
	}
	return "~/" + strings.ReplaceAll(rest, "-", "/")
}

// record is the subset of a transcript line the aggregation cares about.
type record struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	IsMeta    bool   `json:"isMeta"`
	CWD       string `json:"cwd"`
	SessionID string `json:"sessionId"`
	Summary   string `json:"summary"`
	Message   struct {
		Content json.RawMessage `json:"content"`
		Usage   *session.Usage  `json:"usage"`
	} `json:"message"`
}

// contentBlock is one element of a structured message content array.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// DecodeLine implements session.Source.
func (s *Source) DecodeLine(line []byte) (session.Event, bool) {
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil {
		return session.Event{}, false
	}

	event := session.Event{
		SessionID: rec.SessionID,
		CWD:       rec.CWD,
	}
	event.Timestamp, _ = timeutil.ParseTimestamp(rec.Timestamp)

	switch rec.Type {
	case "summary":
		event.Kind = session.KindCompaction
		event.Text = rec.Summary
	case "user":
		if rec.IsMeta {
			// Meta-injected records are not user intent; they still
			// contribute their timestamp via KindUnknown.
			break
		}
		event.Kind = session.KindUserMessage
		event.Text = contentText(rec.Message.Content)
	case "assistant":
		event.Kind = session.KindAssistantMessage
		event.Text = contentText(rec.Message.Content)
		event.Usage = rec.Message.Usage
	}

	return event, true
}

// contentText extracts plain text from a message content field, which is
// either a string or an array of typed blocks.
func contentText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}

	var parts []string
	for _, block := range blocks {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, " ")
}
