package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// Unit conversions between the coach-facing units (miles, minutes) and the
// fitness-service units (meters, seconds). Keep these in one place; they are
// covered by dedicated tests.
const (
	metersPerMile    = 1609.34
	secondsPerMinute = 60
)

// Maximum contribution of each scoring factor. The factors are additive and
// the total is capped at 1.0.
const (
	dateBonusFull     = 0.40
	dateBonusNearMax  = 0.30
	dateBonusNearMin  = 0.20
	distanceBonusFull = 0.25
	distanceBonusPart = 0.10
	durationBonusFull = 0.20
	durationBonusPart = 0.05
	typeBonus         = 0.15
	exactThreshold    = 0.80
	probableThreshold = 0.60
)

// Score computes the similarity between one recorded activity and one
// planned workout. It is pure: no clock, no logging, no error path. Absent
// or zero-valued optional fields contribute neither score nor discrepancy.
func Score(activity models.RecordedActivity, workout models.PlannedWorkout, opts Options) MatchResult {
	result := MatchResult{
		Activity: activity,
		Workout:  workout,
	}

	var score float64
	score += scoreDate(activity, workout, opts, &result)
	score += scoreDistance(activity, workout, opts, &result)
	score += scoreDuration(activity, workout, opts, &result)
	score += scoreType(activity, workout, &result)

	result.Confidence = math.Min(score, 1.0)
	result.MatchType = classify(result.Confidence, result.Discrepancies, opts)
	result.Suggestions = buildSuggestions(result.Discrepancies)
	return result
}

// scoreDate awards up to 0.40 for calendar proximity. Inside the tolerance
// window the bonus decays linearly from 0.30 toward 0.20 at the boundary;
// outside it the pair earns nothing and a date discrepancy is recorded.
func scoreDate(activity models.RecordedActivity, workout models.PlannedWorkout, opts Options, result *MatchResult) float64 {
	if activity.StartDate.IsZero() || workout.Date.IsZero() {
		return 0
	}

	activityDay := models.DateOnly(activity.StartDate)
	workoutDay := models.DateOnly(workout.Date)
	dayDiff := int(math.Abs(activityDay.Sub(workoutDay).Hours() / 24))

	if dayDiff == 0 {
		return dateBonusFull
	}

	tolerance := opts.DateToleranceDays
	if tolerance > 0 && dayDiff <= tolerance {
		closeness := float64(dayDiff) / float64(tolerance)
		return dateBonusNearMax - closeness*(dateBonusNearMax-dateBonusNearMin)
	}

	severity := SeverityModerate
	if dayDiff > 3 {
		severity = SeverityMajor
	}
	result.Discrepancies = append(result.Discrepancies, Discrepancy{
		Field:       FieldDate,
		Planned:     workoutDay.Format("2006-01-02"),
		Actual:      activityDay.Format("2006-01-02"),
		Severity:    severity,
		Description: fmt.Sprintf("activity recorded %d days from the planned date", dayDiff),
	})
	return 0
}

// scoreDistance awards up to 0.25 when both sides report a positive
// distance. Misses outside tolerance record a discrepancy and, when the
// relative error stays under 50%, a partial 0.10 consolation bonus.
func scoreDistance(activity models.RecordedActivity, workout models.PlannedWorkout, opts Options, result *MatchResult) float64 {
	if workout.PlannedDistance == nil || *workout.PlannedDistance <= 0 || activity.Distance <= 0 {
		return 0
	}

	planned := *workout.PlannedDistance
	actual := activity.Distance / metersPerMile
	relErr := math.Abs(actual-planned) / planned

	if relErr <= opts.DistanceTolerance {
		return distanceBonusFull
	}

	severity := SeverityMinor
	switch {
	case relErr > 0.5:
		severity = SeverityMajor
	case relErr > 0.25:
		severity = SeverityModerate
	}
	result.Discrepancies = append(result.Discrepancies, Discrepancy{
		Field:       FieldDistance,
		Planned:     fmt.Sprintf("%.1f mi", planned),
		Actual:      fmt.Sprintf("%.1f mi", actual),
		Severity:    severity,
		Description: fmt.Sprintf("recorded distance differs from plan by %.0f%%", relErr*100),
	})

	if relErr < 0.5 {
		return distanceBonusPart
	}
	return 0
}

// scoreDuration mirrors scoreDistance with different weights: full 0.20
// inside tolerance, 0.05 consolation under 40% relative error.
func scoreDuration(activity models.RecordedActivity, workout models.PlannedWorkout, opts Options, result *MatchResult) float64 {
	actual := int(math.Round(float64(activity.MovingTime) / secondsPerMinute))
	if workout.PlannedDuration == nil || *workout.PlannedDuration <= 0 || actual <= 0 {
		return 0
	}

	planned := *workout.PlannedDuration
	relErr := math.Abs(float64(actual-planned)) / float64(planned)

	if relErr <= opts.DurationTolerance {
		return durationBonusFull
	}

	severity := SeverityMinor
	switch {
	case relErr > 0.5:
		severity = SeverityMajor
	case relErr > 0.3:
		severity = SeverityModerate
	}
	result.Discrepancies = append(result.Discrepancies, Discrepancy{
		Field:       FieldDuration,
		Planned:     fmt.Sprintf("%d min", planned),
		Actual:      fmt.Sprintf("%d min", actual),
		Severity:    severity,
		Description: fmt.Sprintf("recorded moving time differs from plan by %.0f%%", relErr*100),
	})

	if relErr < 0.4 {
		return durationBonusPart
	}
	return 0
}

// scoreType awards 0.15 for a case-insensitive label match, or for a running
// activity paired with a planned type that mentions running ("Long Run",
// "Tempo Run", ...). A non-running activity that matches nothing records a
// moderate type discrepancy; a running one that merely misses the label is
// left alone.
func scoreType(activity models.RecordedActivity, workout models.PlannedWorkout, result *MatchResult) float64 {
	if activity.Type == "" || workout.PlannedType == "" {
		return 0
	}

	actualType := strings.ToLower(strings.TrimSpace(activity.Type))
	plannedType := strings.ToLower(strings.TrimSpace(workout.PlannedType))

	if actualType == plannedType {
		return typeBonus
	}
	if isRunningActivity(actualType) && strings.Contains(plannedType, "run") {
		return typeBonus
	}
	if !isRunningActivity(actualType) {
		result.Discrepancies = append(result.Discrepancies, Discrepancy{
			Field:       FieldType,
			Planned:     workout.PlannedType,
			Actual:      activity.Type,
			Severity:    SeverityModerate,
			Description: fmt.Sprintf("activity type %q does not match planned type %q", activity.Type, workout.PlannedType),
		})
	}
	return 0
}

// isRunningActivity reports whether a lowercased fitness-service activity
// type is a running sport (Run, TrailRun, VirtualRun, ...).
func isRunningActivity(lowerType string) bool {
	return strings.Contains(lowerType, "run")
}

// classify maps an accumulated confidence plus its discrepancies to a tier.
func classify(confidence float64, discrepancies []Discrepancy, opts Options) MatchType {
	hasMajor := false
	for _, d := range discrepancies {
		switch d.Severity {
		case SeverityMajor:
			hasMajor = true
		case SeverityModerate, SeverityMinor:
		}
	}

	switch {
	case confidence >= exactThreshold && len(discrepancies) == 0:
		return MatchExact
	case confidence >= probableThreshold && !hasMajor:
		return MatchProbable
	case confidence >= opts.MinConfidence:
		return MatchPossible
	default:
		return MatchConflict
	}
}

// buildSuggestions emits coach-facing guidance in discrepancy order, so the
// same result always carries the same suggestions.
func buildSuggestions(discrepancies []Discrepancy) []string {
	var suggestions []string
	for _, d := range discrepancies {
		switch d.Field {
		case FieldDate:
			suggestions = append(suggestions, "Activity was recorded on a different day than planned. Confirm it belongs to this workout before syncing.")
		case FieldDistance:
			if d.Severity != SeverityMinor {
				suggestions = append(suggestions, "Recorded distance differs notably from the plan. Consider updating the planned distance or checking for a cut-short run.")
			}
		case FieldDuration:
			if d.Severity != SeverityMinor {
				suggestions = append(suggestions, "Recorded moving time differs notably from the plan. Review the planned duration.")
			}
		case FieldType:
			suggestions = append(suggestions, "Activity type does not match the planned workout type. Verify the athlete did the intended session.")
		}
	}
	return suggestions
}
