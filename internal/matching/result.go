package matching

import (
	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// MatchType classifies a scored pair into an actionable tier.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchProbable MatchType = "probable"
	MatchPossible MatchType = "possible"
	MatchConflict MatchType = "conflict"
)

// Severity grades how badly a single field disagrees.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// Field names the workout attribute a discrepancy refers to.
type Field string

const (
	FieldDate     Field = "date"
	FieldDistance Field = "distance"
	FieldDuration Field = "duration"
	FieldType     Field = "type"
)

// Discrepancy records one disagreement between planned and actual values.
type Discrepancy struct {
	Field       Field    `json:"field"`
	Planned     string   `json:"planned"`
	Actual      string   `json:"actual"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// MatchResult is the outcome of scoring one activity against one workout.
// It is a value object: computed fresh per call and never persisted here.
type MatchResult struct {
	Activity      models.RecordedActivity `json:"activity"`
	Workout       models.PlannedWorkout   `json:"workout"`
	Confidence    float64                 `json:"confidence"`
	MatchType     MatchType               `json:"match_type"`
	Discrepancies []Discrepancy           `json:"discrepancies"`
	Suggestions   []string                `json:"suggestions"`
}

// SummaryReport aggregates a batch-match pass for human review.
type SummaryReport struct {
	TotalActivities   int      `json:"total_activities"`
	TotalWorkouts     int      `json:"total_workouts"`
	TotalMatches      int      `json:"total_matches"`
	ExactMatches      int      `json:"exact_matches"`
	ProbableMatches   int      `json:"probable_matches"`
	PossibleMatches   int      `json:"possible_matches"`
	Conflicts         int      `json:"conflicts"`
	UnmatchedWorkouts int      `json:"unmatched_workouts"`
	Suggestions       []string `json:"suggestions"`
}
