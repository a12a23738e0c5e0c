package matching

import (
	"reflect"
	"strings"
	"testing"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// TestSummaryZeroInputs verifies that empty inputs produce all-zero counts
// and no suggestions.
func TestSummaryZeroInputs(t *testing.T) {
	report := testMatcher(DefaultOptions()).Summary(nil, nil, nil)

	if report.TotalActivities != 0 || report.TotalWorkouts != 0 || report.TotalMatches != 0 {
		t.Errorf("totals = %+v, want all zero", report)
	}
	if report.UnmatchedWorkouts != 0 {
		t.Errorf("unmatched = %d, want 0", report.UnmatchedWorkouts)
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", report.Suggestions)
	}
}

// TestSummaryTallies verifies per-tier counting and the conflict bucket.
func TestSummaryTallies(t *testing.T) {
	w := testWorkout("2025-06-01", 10.0, 80, "Long Run")
	a := testActivity(1, "2025-06-01T08:00:00Z", 16093.4, 4800, "Run")

	matches := map[int64][]MatchResult{
		1: {
			{Workout: w, Confidence: 0.95, MatchType: MatchExact},
			{Workout: w, Confidence: 0.65, MatchType: MatchProbable},
		},
		2: {
			{Workout: w, Confidence: 0.40, MatchType: MatchPossible},
			{Workout: w, Confidence: 0.10, MatchType: MatchConflict},
		},
	}

	report := testMatcher(DefaultOptions()).Summary(
		[]models.RecordedActivity{a}, []models.PlannedWorkout{w}, matches)

	if report.TotalMatches != 4 {
		t.Errorf("total matches = %d, want 4", report.TotalMatches)
	}
	if report.ExactMatches != 1 || report.ProbableMatches != 1 || report.PossibleMatches != 1 || report.Conflicts != 1 {
		t.Errorf("tier counts = %d/%d/%d/%d, want 1 each",
			report.ExactMatches, report.ProbableMatches, report.PossibleMatches, report.Conflicts)
	}
	if report.TotalActivities != 1 || report.TotalWorkouts != 1 {
		t.Errorf("totals = %d activities / %d workouts, want 1/1", report.TotalActivities, report.TotalWorkouts)
	}
}

// TestSummarySuggestions verifies that guidance lines appear only for
// non-zero tallies, mention the counts, and agree in number.
func TestSummarySuggestions(t *testing.T) {
	w := testWorkout("2025-06-01", 10.0, 80, "Long Run")
	w2 := testWorkout("2025-06-03", 6.0, 50, "Tempo Run")
	overdue := testWorkout("2025-06-05", 5.0, 0, "")

	matches := map[int64][]MatchResult{
		1: {{Workout: w, Confidence: 0.95, MatchType: MatchExact}},
		2: {{Workout: w2, Confidence: 0.92, MatchType: MatchExact}},
	}

	report := testMatcher(DefaultOptions()).Summary(nil,
		[]models.PlannedWorkout{w, w2, overdue}, matches)

	if len(report.Suggestions) != 2 {
		t.Fatalf("suggestions = %v, want 2 (exact + overdue)", report.Suggestions)
	}
	if !strings.Contains(report.Suggestions[0], "2 activities are perfect matches") {
		t.Errorf("first suggestion = %q, want the plural exact-match line", report.Suggestions[0])
	}
	if !strings.Contains(report.Suggestions[1], "1 planned workout is overdue") {
		t.Errorf("second suggestion = %q, want the singular overdue line", report.Suggestions[1])
	}
}

// TestSummaryIdempotence verifies that two calls over identical inputs yield
// identical reports and leave the inputs untouched.
func TestSummaryIdempotence(t *testing.T) {
	m := testMatcher(DefaultOptions())

	workouts := []models.PlannedWorkout{
		testWorkout("2025-06-01", 10.0, 80, "Long Run"),
		testWorkout("2025-06-05", 5.0, 40, "Tempo Run"),
	}
	activities := []models.RecordedActivity{
		testActivity(1, "2025-06-01T08:00:00Z", 16093.4, 4800, "Run"),
	}
	matches := m.BatchMatch(activities, workouts)

	first := m.Summary(activities, workouts, matches)
	second := m.Summary(activities, workouts, matches)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
