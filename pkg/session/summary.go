package session

import (
	"time"

	"github.com/codetrail/worklog/pkg/git"
)

// Turns counts conversation messages by author within the window.
type Turns struct {
	User      int `json:"user"`
	Assistant int `json:"assistant"`
}

// ContextInfo is the derived context-usage summary for one session.
type ContextInfo struct {
	Pct       float64 `json:"pct"`    // occupancy at session end
	Tokens    int     `json:"tokens"` // tokens at session end
	Window    int     `json:"window"` // window size the percentages are against
	MaxPct    float64 `json:"max_pct"`
	RotHits   int     `json:"rot_hits"`
	SmashHits int     `json:"smash_hits"`
}

// TokenTotals are running sums across all usage snapshots in a session,
// kept where the convention piggybacks usage on assistant messages.
type TokenTotals struct {
	Input         int `json:"input_tokens"`
	Output        int `json:"output_tokens"`
	CacheRead     int `json:"cache_read_tokens"`
	CacheCreation int `json:"cache_creation_tokens"`
}

func (t *TokenTotals) add(u *Usage) {
	t.Input += u.InputTokens
	t.Output += u.OutputTokens
	t.CacheRead += u.CacheReadTokens
	t.CacheCreation += u.CacheCreationTokens
}

func (t *TokenTotals) isZero() bool {
	return t.Input == 0 && t.Output == 0 && t.CacheRead == 0 && t.CacheCreation == 0
}

// Summary is the aggregation output for one session file. It is a value
// object synthesized fresh per invocation; the log file is never written.
type Summary struct {
	SessionID string `json:"session_id"`
	Source    string `json:"source"`
	Path      string `json:"path"`

	// Project is the decoded, human-readable project name; CWD is the raw
	// working directory as recorded in the log.
	Project string `json:"project,omitempty"`
	CWD     string `json:"cwd,omitempty"`

	Title string `json:"title,omitempty"`

	// Started and Ended are nil when no record carried a parseable
	// timestamp; renderers show "unknown" for nil.
	Started *time.Time `json:"started"`
	Ended   *time.Time `json:"ended"`

	Turns Turns `json:"turns"`

	// Topics are captured user-message excerpts, in order, bounded.
	Topics []string `json:"topics,omitempty"`

	// Commands are executed command strings, in order.
	Commands []string `json:"commands,omitempty"`

	// FilesTouched are patch-touched paths, sorted.
	FilesTouched []string `json:"files_touched,omitempty"`

	// Compactions are summarization texts, deduplicated by exact equality
	// with first-seen order preserved.
	Compactions []string `json:"compactions,omitempty"`

	Context ContextInfo `json:"context"`

	Totals *TokenTotals `json:"token_totals,omitempty"`

	Commits []git.Commit `json:"git_commits"`
}

// Report is the top-level extraction output.
type Report struct {
	ExtractedAt time.Time  `json:"extracted_at"`
	Since       *time.Time `json:"since"`
	Sessions    []*Summary `json:"sessions"`
}

// TotalTurns sums user and assistant turns across the report's sessions.
func (r *Report) TotalTurns() Turns {
	var t Turns
	for _, s := range r.Sessions {
		t.User += s.Turns.User
		t.Assistant += s.Turns.Assistant
	}
	return t
}

// ProjectCount counts distinct decoded project names across the report.
func (r *Report) ProjectCount() int {
	seen := make(map[string]struct{})
	for _, s := range r.Sessions {
		name := s.Project
		if name == "" {
			name = "unknown"
		}
		seen[name] = struct{}{}
	}
	return len(seen)
}

// ThresholdHits sums rot and smash hits across the report's sessions.
func (r *Report) ThresholdHits() (rot, smash int) {
	for _, s := range r.Sessions {
		rot += s.Context.RotHits
		smash += s.Context.SmashHits
	}
	return rot, smash
}
