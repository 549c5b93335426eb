package session

import "strings"

// noisePrefixes match mechanically injected wrapper text that session logs
// interleave with genuine user messages. Checked case-insensitively.
var noisePrefixes = []string{
	"# agents.md instructions",
	"<environment_context>",
	"<instructions>",
	"<user_shell_command>",
	"<command",       // slash-command wrappers (<command-name>, <command-message>)
	"<local-command", // local command output echoes
	"[{",             // stringified tool-result blocks echoed as user content
}

// IsNoise reports whether user-message text is injected boilerplate rather
// than user intent. Counting such text as a topic corrupts message counts
// and excerpts, so the aggregator drops it.
func IsNoise(text string) bool {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return true
	}

	lowered := strings.ToLower(stripped)
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}

	if strings.Contains(lowered, "agents.md") && strings.Contains(lowered, "instructions") {
		return true
	}

	return false
}
