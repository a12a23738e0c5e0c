package ingest

// ExportActivity is one activity as delivered by the fitness-service export
// (a JSON array of these). Field names follow the service's API: distance
// in meters, times in seconds, start_date in RFC 3339.
type ExportActivity struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	StartDate          string   `json:"start_date"`
	Distance           float64  `json:"distance"`
	MovingTime         int      `json:"moving_time"`
	ElapsedTime        int      `json:"elapsed_time"`
	TotalElevationGain *float64 `json:"total_elevation_gain"`
	Type               string   `json:"type"`
	SportType          string   `json:"sport_type"`
	LocationCity       string   `json:"location_city"`
	LocationState      string   `json:"location_state"`
}

// Result holds the outcome of an ingest operation.
type Result struct {
	ActivitiesReceived int      `json:"activities_received"`
	ActivitiesInserted int64    `json:"activities_inserted"`
	ActivitiesSkipped  int64    `json:"activities_skipped"`
	ActivitiesRejected int      `json:"activities_rejected"`
	RejectedReasons    []string `json:"rejected_reasons,omitempty"`
	Message            string   `json:"message,omitempty"`
}
