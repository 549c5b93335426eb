package session

import (
	"strings"

	"github.com/codetrail/worklog/pkg/config"
)

// DeriveTitle picks a one-line title for a session: the first captured
// topic, else the first command, else the first touched file.
func DeriveTitle(topics, commands, files []string) string {
	if len(topics) > 0 {
		return Shorten(topics[0], config.MaxTitleLength)
	}
	if len(commands) > 0 {
		return Shorten("cmd: "+commands[0], config.MaxTitleLength)
	}
	if len(files) > 0 {
		return Shorten("files: "+files[0], config.MaxTitleLength)
	}
	return ""
}

// Shorten collapses whitespace runs to single spaces and truncates to limit
// runes, appending "..." when the text was cut.
func Shorten(text string, limit int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	runes := []rune(cleaned)
	if len(runes) <= limit {
		return cleaned
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
