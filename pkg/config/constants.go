package config

import "time"

// Application constants - centralized configuration values used across packages

// === Context Usage ===

const (
	// DefaultContextWindow is the assumed model context window for sources
	// that do not report one per sample (Claude Code transcripts)
	DefaultContextWindow = 200000

	// RotThreshold is the context-usage percentage at which a session is
	// considered degraded ("rot")
	RotThreshold = 80.0

	// SmashThreshold is the context-usage percentage at which a session has
	// effectively hit the window ceiling ("smash")
	SmashThreshold = 99.0
)

// === Aggregation Limits ===

const (
	// MaxTopics is the maximum number of user-message excerpts retained per session
	MaxTopics = 10

	// MaxTopicLength is the character budget for a retained user-message excerpt
	MaxTopicLength = 300

	// MaxTitleLength is the character budget for a derived session title
	MaxTitleLength = 120
)

// === File Processing ===

const (
	// MaxJSONLLineSize is the maximum size for a single JSONL line (10MB)
	// Default bufio.Scanner buffer is 64KB, but transcript lines with
	// thinking blocks and tool results can exceed 1MB
	MaxJSONLLineSize = 10 * 1024 * 1024
)

// === Subprocess Timeouts ===

const (
	// GitLogTimeout bounds the git subprocess used for commit correlation
	GitLogTimeout = 10 * time.Second
)

// === ID Formats ===

const (
	// UUIDLength is the expected length of UUID strings (with hyphens)
	UUIDLength = 36
)

// === File Paths ===

const (
	// WorklogDir is the worklog state directory name
	WorklogDir = ".worklog"

	// LogDirName is the log directory within the worklog dir
	LogDirName = ".worklog/logs"

	// LogFileName is the name of the log file
	LogFileName = "worklog.log"

	// IndexFileName is the SQLite session index file name
	IndexFileName = "worklog.db"
)

// Claude Code directories
const (
	// ClaudeStateDir is the Claude Code state directory name
	ClaudeStateDir = ".claude"

	// ClaudeProjectsSubdir is the projects subdirectory within the Claude state dir
	ClaudeProjectsSubdir = "projects"
)

// Codex directories
const (
	// CodexStateDir is the Codex state directory name
	CodexStateDir = ".codex"

	// CodexSessionsSubdir is the sessions subdirectory within the Codex state dir
	CodexSessionsSubdir = "sessions"
)

// === Environment Variables ===

const (
	// ClaudeStateDirEnv overrides the default Claude state directory
	ClaudeStateDirEnv = "WORKLOG_CLAUDE_DIR"

	// CodexStateDirEnv overrides the default Codex state directory
	CodexStateDirEnv = "WORKLOG_CODEX_DIR"

	// WorklogDirEnv overrides the default worklog state directory
	WorklogDirEnv = "WORKLOG_DIR"
)
