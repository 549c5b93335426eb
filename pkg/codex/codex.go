// Package codex adapts Codex rollout logs to the normalized event stream.
//
// Logs live under ~/.codex/sessions/**/rollout-<date>-<id>.jsonl. Each line
// carries a type discriminator: session_meta (identity), event_msg (nested
// token_count telemetry), or response_item (messages and tool calls).
package codex

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/codetrail/worklog/pkg/config"
	"github.com/codetrail/worklog/pkg/session"
	"github.com/codetrail/worklog/pkg/timeutil"
)

// Source reads Codex rollout logs.
type Source struct {
	sessionsDir string
	home        string
}

// NewSource builds a Source against the configured sessions directory.
func NewSource() (*Source, error) {
	sessionsDir, err := config.GetCodexSessionsDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewSourceAt(sessionsDir, home), nil
}

// NewSourceAt builds a Source against explicit directories, for tests.
func NewSourceAt(sessionsDir, home string) *Source {
	return &Source{sessionsDir: sessionsDir, home: strings.TrimSuffix(home, "/")}
}

// Name implements session.Source.
func (s *Source) Name() string { return "codex" }

// ContextWindow implements session.Source. Codex telemetry reports the
// model window per sample, so no fixed window is assumed.
func (s *Source) ContextWindow() int { return 0 }

// Sessions walks the sessions tree for rollout-*.jsonl files. A filter
// matches as a substring of the file stem (rollout file names embed the
// session id alongside a date). Results are sorted for determinism.
func (s *Source) Sessions(since *time.Time, filter string) ([]string, error) {
	if _, err := os.Stat(s.sessionsDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat sessions directory: %w", err)
	}

	var paths []string
	err := filepath.WalkDir(s.sessionsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable subtrees, keep walking
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		if !strings.HasPrefix(name, "rollout-") || !strings.HasSuffix(name, ".jsonl") {
			return nil
		}

		if filter != "" && !strings.Contains(strings.TrimSuffix(name, ".jsonl"), filter) {
			return nil
		}

		if since != nil {
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.ModTime().Before(*since) {
				return nil
			}
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk sessions directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// SessionID implements session.Source: the file stem is the fallback id.
func (s *Source) SessionID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// Project implements session.Source by shortening the recorded working
// directory under the user's home to a "~" form.
func (s *Source) Project(path, cwd string) string {
	if cwd == "" {
		return ""
	}
	if s.home == "" || !strings.HasPrefix(cwd, s.home) {
		return cwd
	}
	rest := cwd[len(s.home):]
	switch {
	case rest == "":
		return "~"
	case strings.HasPrefix(rest, "/"):
		return "~" + rest
	default:
		// Shared prefix but a different directory ("/home/user2").
		return cwd
	}
}

type rawRecord struct {
	Timestamp string          `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

type metaPayload struct {
	ID  string `json:"id"`
	CWD string `json:"cwd"`
}

type eventPayload struct {
	Type string     `json:"type"`
	Info *tokenInfo `json:"info"`
}

type tokenInfo struct {
	ModelContextWindow int         `json:"model_context_window"`
	LastTokenUsage     *tokenUsage `json:"last_token_usage"`
	TotalTokenUsage    *tokenUsage `json:"total_token_usage"`
}

type tokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	CachedTokens int `json:"cached_input_tokens"`
}

type responsePayload struct {
	Type      string         `json:"type"`
	Role      string         `json:"role"`
	Name      string         `json:"name"`
	Arguments string         `json:"arguments"`
	Input     string         `json:"input"`
	Content   []contentBlock `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// DecodeLine implements session.Source.
func (s *Source) DecodeLine(line []byte) (session.Event, bool) {
	var rec rawRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return session.Event{}, false
	}

	event := session.Event{}
	event.Timestamp, _ = timeutil.ParseTimestamp(rec.Timestamp)

	switch rec.Type {
	case "session_meta":
		var meta metaPayload
		if err := json.Unmarshal(rec.Payload, &meta); err == nil {
			event.Kind = session.KindMeta
			event.SessionID = meta.ID
			event.CWD = meta.CWD
		}

	case "event_msg":
		var payload eventPayload
		if err := json.Unmarshal(rec.Payload, &payload); err != nil {
			break
		}
		if payload.Type != "token_count" {
			break
		}
		if sample := sampleFromInfo(payload.Info, event.Timestamp); sample != nil {
			event.Kind = session.KindTokenCount
			event.Sample = sample
		}

	case "response_item":
		s.decodeResponseItem(rec.Payload, &event)
	}

	return event, true
}

// decodeResponseItem fills event from a response_item payload: a
// conversation message, an exec_command invocation, or an apply_patch call.
func (s *Source) decodeResponseItem(raw json.RawMessage, event *session.Event) {
	var payload responsePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return
	}

	switch payload.Type {
	case "message":
		switch payload.Role {
		case "user":
			event.Kind = session.KindUserMessage
		case "assistant":
			event.Kind = session.KindAssistantMessage
		default:
			return
		}
		event.Text = blocksText(payload.Content)

	case "function_call":
		if payload.Name != "exec_command" {
			return
		}
		var args struct {
			Cmd string `json:"cmd"`
		}
		// Arguments arrive as a JSON string; a record with unreadable
		// arguments is treated as absent data, not a parse error.
		if err := json.Unmarshal([]byte(payload.Arguments), &args); err != nil {
			return
		}
		if args.Cmd != "" {
			event.Kind = session.KindCommand
			event.Text = args.Cmd
		}

	case "custom_tool_call":
		if payload.Name != "apply_patch" {
			return
		}
		if files := ParsePatchFiles(payload.Input); len(files) > 0 {
			event.Kind = session.KindFileChange
			event.Files = files
		}
	}
}

// sampleFromInfo builds a context sample from token_count telemetry.
// Missing window, usage or timestamp yields nil.
func sampleFromInfo(info *tokenInfo, ts time.Time) *session.ContextSample {
	if info == nil || ts.IsZero() {
		return nil
	}

	usage := info.LastTokenUsage
	if usage == nil {
		usage = info.TotalTokenUsage
	}
	if info.ModelContextWindow <= 0 || usage == nil {
		return nil
	}

	tokens := usage.InputTokens + usage.CachedTokens
	return &session.ContextSample{
		Timestamp: ts,
		Pct:       session.RoundPct(tokens, info.ModelContextWindow),
		Tokens:    tokens,
		Window:    info.ModelContextWindow,
	}
}

// blocksText concatenates the text-bearing content blocks of a message.
func blocksText(blocks []contentBlock) string {
	var parts []string
	for _, block := range blocks {
		switch block.Type {
		case "input_text", "output_text", "text":
			if block.Text != "" {
				parts = append(parts, block.Text)
			}
		}
	}
	return strings.Join(parts, "")
}

// patchMarkers prefix the file-operation lines of an apply_patch payload.
var patchMarkers = []string{
	"*** Add File: ",
	"*** Update File: ",
	"*** Delete File: ",
	"*** Move to: ",
}

// ParsePatchFiles extracts the file paths named by a patch description.
// Each add/update/delete/move marker line yields one path.
func ParsePatchFiles(patch string) []string {
	var files []string
	for _, line := range strings.Split(patch, "\n") {
		for _, marker := range patchMarkers {
			if strings.HasPrefix(line, marker) {
				if path := strings.TrimSpace(line[len(marker):]); path != "" {
					files = append(files, path)
				}
				break
			}
		}
	}
	return files
}
