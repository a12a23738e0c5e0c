package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutStatus is the lifecycle state of a planned workout.
type WorkoutStatus string

const (
	StatusPlanned   WorkoutStatus = "planned"
	StatusCompleted WorkoutStatus = "completed"
	StatusSkipped   WorkoutStatus = "skipped"
)

// PlannedWorkout is a coach-authored training session with target metrics.
// Owned by the training-plan subsystem; read-only to the matching engine.
type PlannedWorkout struct {
	ID        uuid.UUID `json:"id"`
	AthleteID int64     `json:"athlete_id"`
	Title     string    `json:"title,omitempty"`
	// Date is date-only; the time component is always midnight UTC.
	Date            time.Time     `json:"date"`
	PlannedDistance *float64      `json:"planned_distance,omitempty"` // miles
	PlannedDuration *int          `json:"planned_duration,omitempty"` // minutes
	PlannedType     string        `json:"planned_type,omitempty"`
	Status          WorkoutStatus `json:"status"`
	Notes           string        `json:"notes,omitempty"`
}

// RecordedActivity is a device-reported exercise session as delivered by the
// fitness-service export. Distances are meters, times are seconds.
type RecordedActivity struct {
	ID                 int64     `json:"id"`
	AthleteID          int64     `json:"athlete_id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"start_date"`
	Distance           float64   `json:"distance"`    // meters
	MovingTime         int       `json:"moving_time"` // seconds
	ElapsedTime        int       `json:"elapsed_time,omitempty"`
	TotalElevationGain *float64  `json:"total_elevation_gain,omitempty"` // meters
	Type               string    `json:"type"`
	LocationCity       string    `json:"location_city,omitempty"`
	LocationState      string    `json:"location_state,omitempty"`
	RawJSON            []byte    `json:"-"`
}

// DateOnly truncates t to its calendar date in its own location, normalized
// to midnight UTC so that whole-day arithmetic is location-independent.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
