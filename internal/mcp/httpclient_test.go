package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths and
// query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestQueryPlannedWorkouts verifies the HTTP client sends athlete and range
// params and parses the workout array response.
func TestQueryPlannedWorkouts(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("athlete_id"); got != "7" {
				t.Errorf("athlete_id=%q, want 7", got)
			}
			if got := r.URL.Query().Get("start"); got == "" {
				t.Error("start param missing")
			}
			writeTestJSON(t, w, []models.PlannedWorkout{
				{ID: id, AthleteID: 7, Status: models.StatusPlanned},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	workouts, err := client.QueryPlannedWorkouts(context.Background(), 7, start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	if workouts[0].ID != id {
		t.Errorf("id = %v, want %v", workouts[0].ID, id)
	}
}

// TestQueryActivities verifies the activity endpoint path and decoding.
func TestQueryActivities(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/activities": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.RecordedActivity{
				{ID: 42, AthleteID: 7, Type: "Run", Distance: 16093.4},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	activities, err := client.QueryActivities(context.Background(), 7, time.Now().AddDate(0, 0, -7), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(activities) != 1 || activities[0].ID != 42 {
		t.Fatalf("activities = %+v, want one with ID 42", activities)
	}
}

// TestGetJSONErrorStatus verifies non-200 responses surface as errors with
// the status code.
func TestGetJSONErrorStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	_, err := client.QueryPlannedWorkouts(context.Background(), 1, time.Now(), time.Now())
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
