package core

import (
	"testing"
	"time"
)

func TestParseDate_RoundTrip(t *testing.T) {
	parsed, err := ParseDate("2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDate(parsed) != "2026-09-01" {
		t.Fatalf("roundtrip mismatch: %s", FormatDate(parsed))
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, s := range []string{"", "09/01/2026", "2026-13-40", "tomorrow"} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2026-09-01", "2026-09-01", 0},
		{"2026-09-01", "2026-09-08", 7},
		{"2026-09-08", "2026-09-01", -7},
		{"2026-08-31", "2026-09-01", 1},
	}
	for _, tt := range tests {
		from, _ := ParseDate(tt.from)
		to, _ := ParseDate(tt.to)
		if got := daysBetween(from, to); got != tt.want {
			t.Fatalf("daysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)
	to := time.Date(2026, 9, 2, 0, 1, 0, 0, time.UTC)
	if got := daysBetween(from, to); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
}

func TestStartOfWeek_SundayStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-09-01", "2026-08-30"}, // Tuesday → previous Sunday
		{"2026-08-30", "2026-08-30"}, // Sunday is its own week start
		{"2026-09-05", "2026-08-30"}, // Saturday → same week's Sunday
	}
	for _, tt := range tests {
		d, _ := ParseDate(tt.date)
		if got := FormatDate(startOfWeek(d)); got != tt.want {
			t.Fatalf("startOfWeek(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}
