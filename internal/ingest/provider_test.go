package ingest

import (
	"testing"
	"time"
)

const samplePayload = `[
  {
    "id": 12345,
    "name": "Morning Run",
    "start_date": "2025-06-01T08:00:00Z",
    "distance": 16093.4,
    "moving_time": 4800,
    "elapsed_time": 5100,
    "total_elevation_gain": 120.5,
    "type": "Run",
    "sport_type": "TrailRun",
    "location_city": "Boulder",
    "location_state": "CO"
  },
  {
    "id": 12346,
    "name": "Evening Spin",
    "start_date": "2025-06-02T18:30:00",
    "distance": 30000,
    "moving_time": 3600,
    "type": "Ride"
  }
]`

// TestParseValidPayload verifies field mapping from the export shape,
// including the sport_type-over-type preference and the zone-less date
// fallback.
func TestParseValidPayload(t *testing.T) {
	activities, result := Parse([]byte(samplePayload), 7)

	if result.ActivitiesReceived != 2 {
		t.Errorf("received = %d, want 2", result.ActivitiesReceived)
	}
	if result.ActivitiesRejected != 0 {
		t.Fatalf("rejected = %d (%v), want 0", result.ActivitiesRejected, result.RejectedReasons)
	}
	if len(activities) != 2 {
		t.Fatalf("activities = %d, want 2", len(activities))
	}

	a := activities[0]
	if a.ID != 12345 {
		t.Errorf("id = %d, want 12345", a.ID)
	}
	if a.AthleteID != 7 {
		t.Errorf("athlete_id = %d, want 7", a.AthleteID)
	}
	if a.Type != "TrailRun" {
		t.Errorf("type = %q, want sport_type to win", a.Type)
	}
	if a.Distance != 16093.4 {
		t.Errorf("distance = %v, want 16093.4", a.Distance)
	}
	if a.TotalElevationGain == nil || *a.TotalElevationGain != 120.5 {
		t.Errorf("elevation = %v, want 120.5", a.TotalElevationGain)
	}
	want := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if !a.StartDate.Equal(want) {
		t.Errorf("start_date = %v, want %v", a.StartDate, want)
	}
	if len(a.RawJSON) == 0 {
		t.Error("raw JSON not preserved")
	}

	b := activities[1]
	if b.Type != "Ride" {
		t.Errorf("type = %q, want legacy type fallback", b.Type)
	}
	if b.StartDate.IsZero() {
		t.Error("zone-less start_date not parsed")
	}
}

// TestParseRejectsBadEntries verifies that individually broken entries are
// rejected with reasons while the rest of the payload survives.
func TestParseRejectsBadEntries(t *testing.T) {
	payload := `[
	  {"id": 1, "start_date": "2025-06-01T08:00:00Z", "type": "Run"},
	  {"id": 0, "start_date": "2025-06-01T08:00:00Z", "type": "Run"},
	  {"id": 2, "start_date": "yesterday-ish", "type": "Run"}
	]`
	activities, result := Parse([]byte(payload), 1)

	if len(activities) != 1 {
		t.Errorf("activities = %d, want 1 survivor", len(activities))
	}
	if result.ActivitiesRejected != 2 {
		t.Errorf("rejected = %d, want 2", result.ActivitiesRejected)
	}
	if len(result.RejectedReasons) != 2 {
		t.Errorf("reasons = %v, want 2 entries", result.RejectedReasons)
	}
}

// TestParseNonArray verifies that a non-array payload is rejected outright.
func TestParseNonArray(t *testing.T) {
	activities, result := Parse([]byte(`{"id": 1}`), 1)
	if activities != nil {
		t.Errorf("activities = %v, want nil", activities)
	}
	if result.ActivitiesRejected != 1 {
		t.Errorf("rejected = %d, want 1", result.ActivitiesRejected)
	}
}
