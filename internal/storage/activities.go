package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// InsertActivities batch-inserts recorded activities. Re-delivered
// activities (same ID) are skipped. Returns the count actually inserted.
func (db *DB) InsertActivities(ctx context.Context, activities []models.RecordedActivity) (int64, error) {
	if len(activities) == 0 {
		return 0, nil
	}

	query := `INSERT INTO recorded_activities (id, athlete_id, name, start_date, distance,
		 moving_time, elapsed_time, total_elevation_gain, type, location_city, location_state, raw_json) VALUES `
	args := make([]any, 0, len(activities)*12)
	valueStrings := make([]string, 0, len(activities))

	for i, a := range activities {
		base := i * 12
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10, base+11, base+12,
		))
		args = append(args, a.ID, a.AthleteID, a.Name, a.StartDate, a.Distance,
			a.MovingTime, a.ElapsedTime, a.TotalElevationGain, a.Type,
			a.LocationCity, a.LocationState, a.RawJSON)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting activities: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryActivities retrieves an athlete's activities with start dates inside
// [start, end), ordered by start date.
func (db *DB) QueryActivities(ctx context.Context, athleteID int64, start, end time.Time) ([]models.RecordedActivity, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, athlete_id, name, start_date, distance, moving_time, elapsed_time,
		 total_elevation_gain, type, location_city, location_state
		 FROM recorded_activities
		 WHERE athlete_id = $1 AND start_date >= $2 AND start_date < $3
		 ORDER BY start_date ASC`,
		athleteID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var result []models.RecordedActivity
	for rows.Next() {
		var a models.RecordedActivity
		if err := rows.Scan(&a.ID, &a.AthleteID, &a.Name, &a.StartDate, &a.Distance,
			&a.MovingTime, &a.ElapsedTime, &a.TotalElevationGain, &a.Type,
			&a.LocationCity, &a.LocationState); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
