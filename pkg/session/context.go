package session

import (
	"math"
	"time"
)

// ContextSample is one point in a session's context-usage time series.
type ContextSample struct {
	Timestamp time.Time
	Pct       float64
	Tokens    int
	Window    int
}

// RoundPct computes the context-usage percentage for tokens against a
// window size, rounded to one decimal. A non-positive window yields 0.
func RoundPct(tokens, window int) float64 {
	if window <= 0 {
		return 0
	}
	return math.Round(float64(tokens)/float64(window)*1000) / 10
}

// CurrentUsage derives the current context occupancy from the last usage
// snapshot seen in a session. Fields absent from the snapshot count as 0.
func CurrentUsage(last *Usage, window int) (tokens int, pct float64) {
	if last == nil {
		return 0, 0
	}
	tokens = last.ContextTokens()
	return tokens, RoundPct(tokens, window)
}

// CountThresholdHits counts rising edges in the ordered sample sequence:
// a hit is recorded each time the percentage transitions from below the
// threshold to at-or-above it. Consecutive samples that stay at-or-above
// do not recount; dropping below re-arms the counter.
func CountThresholdHits(samples []ContextSample, threshold float64) int {
	hits := 0
	prev := false
	for _, s := range samples {
		now := s.Pct >= threshold
		if now && !prev {
			hits++
		}
		prev = now
	}
	return hits
}

// MaxPct returns the peak percentage across the sample sequence.
func MaxPct(samples []ContextSample) float64 {
	max := 0.0
	for _, s := range samples {
		if s.Pct > max {
			max = s.Pct
		}
	}
	return max
}
