package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetClaudeStateDir returns the Claude Code state directory path.
// Defaults to ~/.claude but can be overridden with WORKLOG_CLAUDE_DIR.
// The override is useful for testing and non-standard installations.
func GetClaudeStateDir() (string, error) {
	if envDir := os.Getenv(ClaudeStateDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ClaudeStateDir), nil
}

// GetClaudeProjectsDir returns the path to the Claude Code projects directory,
// which holds one subdirectory per project with session transcripts inside.
func GetClaudeProjectsDir() (string, error) {
	claudeDir, err := GetClaudeStateDir()
	if err != nil {
		return "", fmt.Errorf("failed to get claude state directory: %w", err)
	}
	return filepath.Join(claudeDir, ClaudeProjectsSubdir), nil
}

// GetCodexStateDir returns the Codex state directory path.
// Defaults to ~/.codex but can be overridden with WORKLOG_CODEX_DIR.
func GetCodexStateDir() (string, error) {
	if envDir := os.Getenv(CodexStateDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, CodexStateDir), nil
}

// GetCodexSessionsDir returns the path to the Codex sessions directory,
// which holds rollout-*.jsonl files in dated subdirectories.
func GetCodexSessionsDir() (string, error) {
	codexDir, err := GetCodexStateDir()
	if err != nil {
		return "", fmt.Errorf("failed to get codex state directory: %w", err)
	}
	return filepath.Join(codexDir, CodexSessionsSubdir), nil
}

// GetWorklogDir returns the worklog state directory (logs, session index).
// Defaults to ~/.worklog but can be overridden with WORKLOG_DIR.
func GetWorklogDir() (string, error) {
	if envDir := os.Getenv(WorklogDirEnv); envDir != "" {
		return envDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, WorklogDir), nil
}

// GetIndexPath returns the path to the SQLite session index.
func GetIndexPath() (string, error) {
	dir, err := GetWorklogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, IndexFileName), nil
}
