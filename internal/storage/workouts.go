package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// InsertPlannedWorkout inserts a planned workout row. Returns true if
// inserted, false if a workout with the same ID already exists.
func (db *DB) InsertPlannedWorkout(ctx context.Context, w models.PlannedWorkout) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO planned_workouts (id, athlete_id, title, date, planned_distance,
		 planned_duration, planned_type, status, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT DO NOTHING`,
		w.ID, w.AthleteID, w.Title, w.Date, w.PlannedDistance,
		w.PlannedDuration, w.PlannedType, w.Status, w.Notes)
	if err != nil {
		return false, fmt.Errorf("inserting planned workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// QueryPlannedWorkouts retrieves an athlete's workouts with dates inside
// [start, end), ordered by date.
func (db *DB) QueryPlannedWorkouts(ctx context.Context, athleteID int64, start, end time.Time) ([]models.PlannedWorkout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, athlete_id, title, date, planned_distance, planned_duration,
		 planned_type, status, notes
		 FROM planned_workouts
		 WHERE athlete_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date ASC`,
		athleteID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying planned workouts: %w", err)
	}
	defer rows.Close()

	var result []models.PlannedWorkout
	for rows.Next() {
		var w models.PlannedWorkout
		if err := rows.Scan(&w.ID, &w.AthleteID, &w.Title, &w.Date, &w.PlannedDistance,
			&w.PlannedDuration, &w.PlannedType, &w.Status, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning planned workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// UpdateWorkoutStatus transitions a workout's lifecycle status. Returns
// false when the workout does not exist.
func (db *DB) UpdateWorkoutStatus(ctx context.Context, id string, status models.WorkoutStatus) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE planned_workouts SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, fmt.Errorf("updating workout status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
