package session

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/codetrail/worklog/pkg/config"
	"github.com/codetrail/worklog/pkg/git"
	"github.com/codetrail/worklog/pkg/logger"
)

// accumulator is the running state for one file's aggregation. Its lifetime
// is exactly one Aggregate call.
type accumulator struct {
	window int // fixed context window, 0 = per-sample

	sessionID string
	cwd       string

	first time.Time
	last  time.Time

	userMsgs      int
	assistantMsgs int

	topics      []string
	compactions []string
	commands    []string
	files       map[string]struct{}

	lastUsage *Usage
	totals    TokenTotals
	samples   []ContextSample
}

func newAccumulator(window int) *accumulator {
	return &accumulator{
		window: window,
		files:  make(map[string]struct{}),
	}
}

// Aggregate streams one session file and builds its summary in a single
// forward pass. Lines that fail to decode are skipped; a corrupt record
// never invalidates the rest of the session. When cutoff is set and no
// qualifying activity (messages, commands, touched files) falls inside the
// window, the session contributes nothing and nil is returned.
func Aggregate(src Source, path string, cutoff *time.Time) (*Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer file.Close()

	acc := newAccumulator(src.ContextWindow())

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), config.MaxJSONLLineSize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		event, ok := src.DecodeLine(line)
		if !ok {
			continue
		}
		acc.apply(event, cutoff)
	}
	if err := scanner.Err(); err != nil {
		// Keep the partial aggregation; a torn tail or oversized line
		// must not lose the records already consumed.
		logger.Warn("Stopped scanning %s early: %v", path, err)
	}

	return acc.finish(src, path, cutoff), nil
}

func (a *accumulator) apply(event Event, cutoff *time.Time) {
	// Every timestamped record moves the session bounds, in or out of
	// window; the window gates counting, not the observed time range.
	if !event.Timestamp.IsZero() {
		if a.first.IsZero() || event.Timestamp.Before(a.first) {
			a.first = event.Timestamp
		}
		if a.last.IsZero() || event.Timestamp.After(a.last) {
			a.last = event.Timestamp
		}
	}

	// First-writer-wins for session identity.
	if a.sessionID == "" && event.SessionID != "" {
		a.sessionID = event.SessionID
	}
	if a.cwd == "" && event.CWD != "" {
		a.cwd = event.CWD
	}

	inWindow := cutoff == nil || (!event.Timestamp.IsZero() && !event.Timestamp.Before(*cutoff))

	switch event.Kind {
	case KindCompaction:
		if event.Text != "" {
			a.compactions = append(a.compactions, event.Text)
		}

	case KindUserMessage:
		if !inWindow || IsNoise(event.Text) {
			return
		}
		a.userMsgs++
		if len(a.topics) < config.MaxTopics {
			a.topics = append(a.topics, truncateRunes(strings.TrimSpace(event.Text), config.MaxTopicLength))
		}

	case KindAssistantMessage:
		if event.Usage != nil {
			// Overwritten, not accumulated: the latest snapshot reflects
			// current occupancy. The running totals do accumulate.
			a.lastUsage = event.Usage
			a.totals.add(event.Usage)
			if a.window > 0 && inWindow && !event.Timestamp.IsZero() {
				tokens := event.Usage.ContextTokens()
				a.samples = append(a.samples, ContextSample{
					Timestamp: event.Timestamp,
					Pct:       RoundPct(tokens, a.window),
					Tokens:    tokens,
					Window:    a.window,
				})
			}
		}
		if inWindow {
			a.assistantMsgs++
		}

	case KindTokenCount:
		if inWindow && event.Sample != nil {
			a.samples = append(a.samples, *event.Sample)
		}

	case KindCommand:
		if inWindow && event.Text != "" {
			a.commands = append(a.commands, event.Text)
		}

	case KindFileChange:
		if inWindow {
			for _, p := range event.Files {
				a.files[p] = struct{}{}
			}
		}
	}
}

// finish assembles the summary, or returns nil when the window excluded
// all activity.
func (a *accumulator) finish(src Source, path string, cutoff *time.Time) *Summary {
	if cutoff != nil && a.userMsgs == 0 && a.assistantMsgs == 0 &&
		len(a.commands) == 0 && len(a.files) == 0 {
		return nil
	}

	sessionID := a.sessionID
	if sessionID == "" {
		sessionID = src.SessionID(path)
	}

	files := make([]string, 0, len(a.files))
	for p := range a.files {
		files = append(files, p)
	}
	sort.Strings(files)

	sum := &Summary{
		SessionID:    sessionID,
		Source:       src.Name(),
		Path:         path,
		Project:      src.Project(path, a.cwd),
		CWD:          a.cwd,
		Turns:        Turns{User: a.userMsgs, Assistant: a.assistantMsgs},
		Topics:       a.topics,
		Commands:     a.commands,
		FilesTouched: files,
		Compactions:  dedupePreserveOrder(a.compactions),
		Commits:      []git.Commit{},
	}
	sum.Title = DeriveTitle(sum.Topics, sum.Commands, sum.FilesTouched)

	if !a.first.IsZero() {
		first := a.first
		sum.Started = &first
	}
	if !a.last.IsZero() {
		last := a.last
		sum.Ended = &last
	}

	sum.Context = a.contextInfo()

	if !a.totals.isZero() {
		totals := a.totals
		sum.Totals = &totals
	}

	return sum
}

// contextInfo derives end-of-session occupancy and threshold stress from
// the accumulated usage state. The last usage snapshot wins when one
// exists (it survives even with an empty sample series); otherwise the
// last telemetry sample stands in.
func (a *accumulator) contextInfo() ContextInfo {
	info := ContextInfo{
		Window:    a.window,
		MaxPct:    MaxPct(a.samples),
		RotHits:   CountThresholdHits(a.samples, config.RotThreshold),
		SmashHits: CountThresholdHits(a.samples, config.SmashThreshold),
	}

	switch {
	case a.lastUsage != nil && a.window > 0:
		info.Tokens, info.Pct = CurrentUsage(a.lastUsage, a.window)
	case len(a.samples) > 0:
		end := a.samples[len(a.samples)-1]
		info.Tokens = end.Tokens
		info.Pct = end.Pct
		info.Window = end.Window
	}

	if info.Pct > info.MaxPct {
		info.MaxPct = info.Pct
	}

	return info
}

// dedupePreserveOrder drops exact duplicates, keeping the first occurrence.
func dedupePreserveOrder(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// truncateRunes cuts text to at most limit runes without splitting one.
func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
