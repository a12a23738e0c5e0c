package mcp

import (
	"context"
	"testing"
)

// TestAthleteIDFromContextDefault verifies the default athlete ID (1) when
// no value is set in the context.
func TestAthleteIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := AthleteIDFromContext(ctx); id != 1 {
		t.Errorf("AthleteIDFromContext(empty) = %d, want 1", id)
	}
}

// TestAthleteIDFromContextSet verifies the athlete ID is extracted from
// context after being set by WithAthleteID.
func TestAthleteIDFromContextSet(t *testing.T) {
	ctx := WithAthleteID(context.Background(), 42)
	if id := AthleteIDFromContext(ctx); id != 42 {
		t.Errorf("AthleteIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 30 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 30 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 719 || diff.Hours() > 721 { // ~720 hours = 30 days
		t.Errorf("default range = %.0f hours, want ~720", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2025-05-01", "2025-05-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2025 || start.Month() != 5 || start.Day() != 1 {
		t.Errorf("start = %v, want 2025-05-01", start)
	}
	if end.Year() != 2025 || end.Month() != 5 || end.Day() != 31 {
		t.Errorf("end = %v, want 2025-05-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2025-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}
