package matching

import (
	"fmt"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// Summary tallies a batch-match pass: totals, per-tier counts, overdue
// workouts, and plain-language guidance derived from the non-zero tallies.
// All-zero inputs yield all-zero counts and no suggestions.
func (m *Matcher) Summary(activities []models.RecordedActivity, workouts []models.PlannedWorkout, matches map[int64][]MatchResult) SummaryReport {
	report := SummaryReport{
		TotalActivities: len(activities),
		TotalWorkouts:   len(workouts),
	}

	for _, results := range matches {
		for _, r := range results {
			report.TotalMatches++
			switch r.MatchType {
			case MatchExact:
				report.ExactMatches++
			case MatchProbable:
				report.ProbableMatches++
			case MatchPossible:
				report.PossibleMatches++
			case MatchConflict:
				report.Conflicts++
			}
		}
	}

	report.UnmatchedWorkouts = len(m.UnmatchedWorkouts(workouts, matches))

	if report.ExactMatches > 0 {
		report.Suggestions = append(report.Suggestions, pluralize(report.ExactMatches,
			"%d activity is a perfect match and ready to sync.",
			"%d activities are perfect matches and ready to sync."))
	}
	if report.ProbableMatches > 0 {
		report.Suggestions = append(report.Suggestions, pluralize(report.ProbableMatches,
			"%d activity matches with high confidence and needs only a quick review.",
			"%d activities match with high confidence and need only a quick review."))
	}
	if report.PossibleMatches > 0 {
		report.Suggestions = append(report.Suggestions, pluralize(report.PossibleMatches,
			"%d activity is a possible match that needs manual review.",
			"%d activities are possible matches that need manual review."))
	}
	if report.Conflicts > 0 {
		report.Suggestions = append(report.Suggestions, pluralize(report.Conflicts,
			"%d activity conflicts with the plan. Check dates and distances.",
			"%d activities conflict with the plan. Check dates and distances."))
	}
	if report.UnmatchedWorkouts > 0 {
		report.Suggestions = append(report.Suggestions, pluralize(report.UnmatchedWorkouts,
			"%d planned workout is overdue with no recorded activity.",
			"%d planned workouts are overdue with no recorded activity."))
	}

	return report
}

// pluralize formats the count into the singular or plural sentence. Each
// template takes the count as its only argument.
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf(singular, n)
	}
	return fmt.Sprintf(plural, n)
}
