package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "RFC3339 with Z",
			input:  "2026-01-15T10:30:00Z",
			want:   time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "RFC3339 with fractional seconds",
			input:  "2026-01-15T10:30:00.123Z",
			want:   time.Date(2026, 1, 15, 10, 30, 0, 123000000, time.UTC),
			wantOK: true,
		},
		{
			name:   "explicit offset",
			input:  "2026-01-15T10:30:00+02:00",
			want:   time.Date(2026, 1, 15, 10, 30, 0, 0, time.FixedZone("", 2*3600)),
			wantOK: true,
		},
		{
			name:   "zone-less treated as UTC",
			input:  "2026-01-15T10:30:00",
			want:   time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage",
			input:  "not a timestamp",
			wantOK: false,
		},
		{
			name:   "date only is not a record timestamp",
			input:  "2026-01-15",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveSince_Keywords(t *testing.T) {
	now := time.Now()

	got, err := ResolveSince("today")
	if err != nil {
		t.Fatalf("ResolveSince(today) error: %v", err)
	}
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ResolveSince(today) = %v, want %v", got, want)
	}

	got, err = ResolveSince("yesterday")
	if err != nil {
		t.Fatalf("ResolveSince(yesterday) error: %v", err)
	}
	y := now.AddDate(0, 0, -1)
	want = time.Date(y.Year(), y.Month(), y.Day(), 8, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ResolveSince(yesterday) = %v, want %v", got, want)
	}

	// Default (absent expression) is the same as "yesterday".
	def, err := ResolveSince("")
	if err != nil {
		t.Fatalf("ResolveSince(\"\") error: %v", err)
	}
	if !def.Equal(want) {
		t.Errorf("ResolveSince(\"\") = %v, want %v", def, want)
	}
}

func TestResolveSince_Week(t *testing.T) {
	got, err := ResolveSince("week")
	if err != nil {
		t.Fatalf("ResolveSince(week) error: %v", err)
	}
	want := time.Now().AddDate(0, 0, -7)
	diff := got.Sub(want)
	if diff < -time.Second || diff > time.Second {
		t.Errorf("ResolveSince(week) = %v, want %v within 1s", got, want)
	}
}

func TestResolveSince_Explicit(t *testing.T) {
	got, err := ResolveSince("2026-01-15 08:30")
	if err != nil {
		t.Fatalf("ResolveSince() error: %v", err)
	}
	want := time.Date(2026, 1, 15, 8, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ResolveSince() = %v, want %v", got, want)
	}

	// Date only implies midnight.
	got, err = ResolveSince("2026-01-15")
	if err != nil {
		t.Fatalf("ResolveSince() error: %v", err)
	}
	want = time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ResolveSince() = %v, want %v", got, want)
	}
}

func TestResolveSince_CaseAndWhitespace(t *testing.T) {
	got, err := ResolveSince("  TODAY ")
	if err != nil {
		t.Fatalf("ResolveSince() error: %v", err)
	}
	now := time.Now()
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ResolveSince(\"  TODAY \") = %v, want %v", got, want)
	}
}

func TestResolveSince_Invalid(t *testing.T) {
	_, err := ResolveSince("bogus")
	if err == nil {
		t.Fatal("ResolveSince(bogus) expected error")
	}
	if !errors.Is(err, ErrInvalidTimeExpression) {
		t.Errorf("ResolveSince(bogus) error = %v, want ErrInvalidTimeExpression", err)
	}
}
