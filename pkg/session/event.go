// Package session aggregates assistant session logs into summaries.
//
// Each log convention (Claude Code, Codex) is decoded by a Source adapter
// into the normalized Event stream below; aggregation, context tracking and
// rendering are written once against that stream.
package session

import "time"

// Kind discriminates normalized log events.
type Kind int

const (
	// KindUnknown marks records we do not act on. They still contribute
	// their timestamp and any session metadata they carry.
	KindUnknown Kind = iota

	// KindMeta carries the canonical session id and working directory.
	KindMeta

	// KindUserMessage is a user-authored conversation message.
	KindUserMessage

	// KindAssistantMessage is an assistant-authored message, optionally
	// carrying a usage snapshot.
	KindAssistantMessage

	// KindCompaction is an automatic summarization of prior history.
	KindCompaction

	// KindTokenCount is a context-usage telemetry sample.
	KindTokenCount

	// KindCommand is an executed shell command.
	KindCommand

	// KindFileChange carries file paths touched by a patch.
	KindFileChange
)

// Usage is the token-usage snapshot attached to assistant messages.
// Field names match the Claude Code transcript format.
type Usage struct {
	InputTokens         int `json:"input_tokens"`
	OutputTokens        int `json:"output_tokens"`
	CacheReadTokens     int `json:"cache_read_input_tokens"`
	CacheCreationTokens int `json:"cache_creation_input_tokens"`
}

// ContextTokens returns the tokens occupying the context window: prompt
// input plus everything served from or written to the prompt cache.
func (u *Usage) ContextTokens() int {
	return u.InputTokens + u.CacheReadTokens + u.CacheCreationTokens
}

// Event is one normalized log record. A decoded line yields exactly one
// Event; fields beyond Kind and Timestamp are populated per kind.
type Event struct {
	Kind Kind

	// Timestamp is zero when the record had no parseable timestamp.
	Timestamp time.Time

	// SessionID and CWD may ride on any record kind; the aggregator keeps
	// the first non-empty value it sees.
	SessionID string
	CWD       string

	// Text holds message text, a compaction summary, or a command line.
	Text string

	// Usage is the assistant usage snapshot, when present.
	Usage *Usage

	// Sample is a context-usage telemetry sample (KindTokenCount).
	Sample *ContextSample

	// Files are the paths touched by a patch (KindFileChange).
	Files []string
}

// Source adapts one log convention to the normalized event stream.
type Source interface {
	// Name identifies the convention ("claude", "codex").
	Name() string

	// Sessions returns candidate session file paths. When since is set,
	// files whose modification time is strictly earlier are excluded; this
	// is a cheap pre-filter only, and the aggregator independently applies
	// the record-level cutoff. A non-empty filter restricts results by
	// session id (exact or substring match, per convention).
	Sessions(since *time.Time, filter string) ([]string, error)

	// DecodeLine maps one raw JSONL line to a normalized event. It reports
	// false for lines that are not valid JSON objects; such lines are
	// skipped without aborting aggregation.
	DecodeLine(line []byte) (Event, bool)

	// SessionID derives a fallback session id from the file path, used
	// when no record supplies one.
	SessionID(path string) string

	// Project returns the human-readable project name for a session file
	// and its recorded working directory.
	Project(path, cwd string) string

	// ContextWindow returns the fixed context window size assumed for this
	// convention, or 0 when telemetry carries the window per sample.
	ContextWindow() int
}
