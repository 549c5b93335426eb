// Package timeutil parses log timestamps and resolves relative time windows.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimeExpression is returned by ResolveSince for expressions that
// are neither a known keyword nor an explicit date/time.
var ErrInvalidTimeExpression = errors.New("invalid time expression")

// timestampLayouts are tried in order when normalizing record timestamps.
// Session logs write RFC3339 with a trailing Z, with or without fractional
// seconds; a zone-less form shows up in older files and is treated as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601-ish timestamp string into an instant.
// It never fails: malformed or absent input yields ok=false, and callers
// must treat that as "timestamp unknown" rather than as zero time.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if strings.Contains(layout, "Z07:00") {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
			continue
		}
		// Zone-less layouts: pin to UTC so instants stay comparable.
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// ResolveSince maps a window expression to an absolute cutoff instant,
// anchored to the local clock.
//
// Defined mappings:
//
//	""            -> yesterday at 08:00 local time
//	"yesterday"   -> yesterday at 08:00 local time
//	"today"       -> local midnight today
//	"week"        -> now minus 7 days
//	"YYYY-MM-DD HH:MM" or "YYYY-MM-DD" -> parsed as local time
//
// Matching is case-insensitive after trimming. Anything else fails with
// ErrInvalidTimeExpression: a bad window cannot be silently defaulted
// without surprising the user.
func ResolveSince(expr string) (time.Time, error) {
	now := time.Now()
	value := strings.ToLower(strings.TrimSpace(expr))

	switch value {
	case "", "yesterday":
		y := now.AddDate(0, 0, -1)
		return time.Date(y.Year(), y.Month(), y.Day(), 8, 0, 0, 0, time.Local), nil
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	}

	if ts, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeExpression, expr)
}
