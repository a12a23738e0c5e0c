package matching

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// Matcher correlates recorded activities with planned workouts. It holds no
// mutable state; every method is a pure computation over its arguments plus
// the configured options.
type Matcher struct {
	opts Options
	log  *slog.Logger
	now  func() time.Time
}

// New creates a Matcher. A nil logger disables tracing.
func New(opts Options, log *slog.Logger) *Matcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Matcher{opts: opts, log: log, now: time.Now}
}

// Options returns the options the Matcher was built with.
func (m *Matcher) Options() Options {
	return m.opts
}

// MatchActivity scores one activity against every candidate workout, drops
// results below MinConfidence, and returns the rest ordered by descending
// confidence. Ties keep candidate order.
func (m *Matcher) MatchActivity(activity models.RecordedActivity, workouts []models.PlannedWorkout) []MatchResult {
	var results []MatchResult
	for _, w := range workouts {
		r := Score(activity, w, m.opts)
		if r.Confidence >= m.opts.MinConfidence {
			results = append(results, r)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	m.log.Debug("matched activity against candidates",
		"activity_id", activity.ID,
		"candidates", len(workouts),
		"matches", len(results),
	)
	return results
}

// BatchMatch runs MatchActivity for every activity against the same
// candidate pool and keys the results by activity ID. Activities with no
// qualifying match are omitted from the map.
func (m *Matcher) BatchMatch(activities []models.RecordedActivity, workouts []models.PlannedWorkout) map[int64][]MatchResult {
	matches := make(map[int64][]MatchResult)
	for _, a := range activities {
		results := m.MatchActivity(a, workouts)
		if len(results) > 0 {
			matches[a.ID] = results
		}
	}
	return matches
}

// unmatchedConfidenceBar is the floor above which a workout counts as
// matched for overdue reporting. Deliberately stricter than the default
// MinConfidence so borderline matches still surface the workout.
const unmatchedConfidenceBar = 0.5

// UnmatchedWorkouts returns every still-planned workout whose date has
// passed and which no match in the map claims with confidence above the bar.
func (m *Matcher) UnmatchedWorkouts(workouts []models.PlannedWorkout, matches map[int64][]MatchResult) []models.PlannedWorkout {
	matched := make(map[uuid.UUID]bool)
	for _, results := range matches {
		for _, r := range results {
			if r.Confidence > unmatchedConfidenceBar {
				matched[r.Workout.ID] = true
			}
		}
	}

	today := models.DateOnly(m.now())

	var unmatched []models.PlannedWorkout
	for _, w := range workouts {
		if w.Status != models.StatusPlanned {
			continue
		}
		if matched[w.ID] {
			continue
		}
		if models.DateOnly(w.Date).After(today) {
			continue
		}
		unmatched = append(unmatched, w)
	}
	return unmatched
}
