package config

import (
	"path/filepath"
	"testing"
)

func TestGetClaudeStateDir_EnvOverride(t *testing.T) {
	t.Setenv(ClaudeStateDirEnv, "/custom/claude")

	dir, err := GetClaudeStateDir()
	if err != nil {
		t.Fatalf("GetClaudeStateDir() error: %v", err)
	}
	if dir != "/custom/claude" {
		t.Errorf("GetClaudeStateDir() = %q, want %q", dir, "/custom/claude")
	}
}

func TestGetClaudeProjectsDir(t *testing.T) {
	t.Setenv(ClaudeStateDirEnv, "/custom/claude")

	dir, err := GetClaudeProjectsDir()
	if err != nil {
		t.Fatalf("GetClaudeProjectsDir() error: %v", err)
	}
	want := filepath.Join("/custom/claude", "projects")
	if dir != want {
		t.Errorf("GetClaudeProjectsDir() = %q, want %q", dir, want)
	}
}

func TestGetCodexSessionsDir(t *testing.T) {
	t.Setenv(CodexStateDirEnv, "/custom/codex")

	dir, err := GetCodexSessionsDir()
	if err != nil {
		t.Fatalf("GetCodexSessionsDir() error: %v", err)
	}
	want := filepath.Join("/custom/codex", "sessions")
	if dir != want {
		t.Errorf("GetCodexSessionsDir() = %q, want %q", dir, want)
	}
}

func TestGetIndexPath(t *testing.T) {
	t.Setenv(WorklogDirEnv, "/custom/worklog")

	path, err := GetIndexPath()
	if err != nil {
		t.Fatalf("GetIndexPath() error: %v", err)
	}
	want := filepath.Join("/custom/worklog", "worklog.db")
	if path != want {
		t.Errorf("GetIndexPath() = %q, want %q", path, want)
	}
}
