package session

import (
	"strings"
	"testing"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		topics   []string
		commands []string
		files    []string
		want     string
	}{
		{
			name:   "topic wins",
			topics: []string{"fix the login flow", "second topic"},
			want:   "fix the login flow",
		},
		{
			name:     "command fallback",
			commands: []string{"go test ./..."},
			want:     "cmd: go test ./...",
		},
		{
			name:  "file fallback",
			files: []string{"pkg/parser/parser.go"},
			want:  "files: pkg/parser/parser.go",
		},
		{
			name: "nothing captured",
			want: "",
		},
		{
			name:     "topic beats command and file",
			topics:   []string{"add retries"},
			commands: []string{"make build"},
			files:    []string{"a.go"},
			want:     "add retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(tt.topics, tt.commands, tt.files); got != tt.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShorten(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "short text unchanged",
			text:  "hello world",
			limit: 20,
			want:  "hello world",
		},
		{
			name:  "whitespace collapsed",
			text:  "hello\n\n  world\t!",
			limit: 20,
			want:  "hello world !",
		},
		{
			name:  "truncated with ellipsis",
			text:  "abcdefghijklmnop",
			limit: 10,
			want:  "abcdefg...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shorten(tt.text, tt.limit)
			if got != tt.want {
				t.Errorf("Shorten(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
			if len([]rune(got)) > tt.limit {
				t.Errorf("Shorten() length %d exceeds limit %d", len([]rune(got)), tt.limit)
			}
		})
	}
}

func TestShorten_MultibyteSafe(t *testing.T) {
	text := strings.Repeat("é", 50)
	got := Shorten(text, 10)
	if len([]rune(got)) != 10 {
		t.Errorf("Shorten() rune length = %d, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Shorten() = %q, want ... suffix", got)
	}
}
