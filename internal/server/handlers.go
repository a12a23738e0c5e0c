package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shanebarringer/ultracoach-sub004/internal/matching"
	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	athleteID, err := athleteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.ingest.Ingest(r.Context(), r.Body, athleteID)
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type matchRequest struct {
	Activity models.RecordedActivity `json:"activity"`
	Workouts []models.PlannedWorkout `json:"workouts"`
	Options  *matching.Options       `json:"options"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	results := s.matcherFor(req.Options).MatchActivity(req.Activity, req.Workouts)
	if results == nil {
		results = []matching.MatchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

type batchRequest struct {
	Activities []models.RecordedActivity `json:"activities"`
	Workouts   []models.PlannedWorkout   `json:"workouts"`
	Options    *matching.Options         `json:"options"`
}

func (s *Server) handleBatchMatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	matches := s.matcherFor(req.Options).BatchMatch(req.Activities, req.Workouts)
	writeJSON(w, http.StatusOK, matches)
}

type unmatchedRequest struct {
	Workouts []models.PlannedWorkout          `json:"workouts"`
	Matches  map[int64][]matching.MatchResult `json:"matches"`
}

func (s *Server) handleUnmatched(w http.ResponseWriter, r *http.Request) {
	var req unmatchedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	unmatched := s.matcher.UnmatchedWorkouts(req.Workouts, req.Matches)
	if unmatched == nil {
		unmatched = []models.PlannedWorkout{}
	}
	writeJSON(w, http.StatusOK, unmatched)
}

type summaryRequest struct {
	Activities []models.RecordedActivity        `json:"activities"`
	Workouts   []models.PlannedWorkout          `json:"workouts"`
	Matches    map[int64][]matching.MatchResult `json:"matches"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	report := s.matcher.Summary(req.Activities, req.Workouts, req.Matches)
	writeJSON(w, http.StatusOK, report)
}

// handleRun loads an athlete's stored workouts and activities for a time
// range and runs a full matching pass. The results are computed fresh and
// never persisted.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	athleteID, err := athleteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryPlannedWorkouts(r.Context(), athleteID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	activities, err := s.db.QueryActivities(r.Context(), athleteID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	matches := s.matcher.BatchMatch(activities, workouts)
	summary := s.matcher.Summary(activities, workouts, matches)
	unmatched := s.matcher.UnmatchedWorkouts(workouts, matches)
	if unmatched == nil {
		unmatched = []models.PlannedWorkout{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"matches":            matches,
		"summary":            summary,
		"unmatched_workouts": unmatched,
	})
}

type createWorkoutRequest struct {
	ID              string   `json:"id"`
	AthleteID       int64    `json:"athlete_id"`
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	PlannedDistance *float64 `json:"planned_distance"`
	PlannedDuration *int     `json:"planned_duration"`
	PlannedType     string   `json:"planned_type"`
	Notes           string   `json:"notes"`
}

// handleCreateWorkout stores a coach-authored planned workout. The ID is
// generated unless the caller supplies one (re-sent plans keep their ID and
// collide instead of duplicating).
func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.AthleteID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "athlete_id is required"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	id := uuid.New()
	if req.ID != "" {
		id, err = uuid.Parse(req.ID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout id"})
			return
		}
	}

	workout := models.PlannedWorkout{
		ID:              id,
		AthleteID:       req.AthleteID,
		Title:           req.Title,
		Date:            models.DateOnly(date),
		PlannedDistance: req.PlannedDistance,
		PlannedDuration: req.PlannedDuration,
		PlannedType:     req.PlannedType,
		Status:          models.StatusPlanned,
		Notes:           req.Notes,
	}

	inserted, err := s.db.InsertPlannedWorkout(r.Context(), workout)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !inserted {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "workout already exists"})
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

type workoutStatusRequest struct {
	Status models.WorkoutStatus `json:"status"`
}

func (s *Server) handleUpdateWorkoutStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout id"})
		return
	}

	var req workoutStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	switch req.Status {
	case models.StatusPlanned, models.StatusCompleted, models.StatusSkipped:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be planned, completed, or skipped"})
		return
	}

	updated, err := s.db.UpdateWorkoutStatus(r.Context(), id.String(), req.Status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !updated {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id.String(), "status": string(req.Status)})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	athleteID, err := athleteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	workouts, err := s.db.QueryPlannedWorkouts(r.Context(), athleteID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleQueryActivities(w http.ResponseWriter, r *http.Request) {
	athleteID, err := athleteIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	activities, err := s.db.QueryActivities(r.Context(), athleteID, start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

// matcherFor returns the shared matcher, or a one-off whose options are the
// server defaults with the caller-supplied subset layered on top.
func (s *Server) matcherFor(opts *matching.Options) *matching.Matcher {
	if opts == nil {
		return s.matcher
	}
	merged := s.matcher.Options()
	if opts.DateToleranceDays > 0 {
		merged.DateToleranceDays = opts.DateToleranceDays
	}
	if opts.DistanceTolerance > 0 {
		merged.DistanceTolerance = opts.DistanceTolerance
	}
	if opts.DurationTolerance > 0 {
		merged.DurationTolerance = opts.DurationTolerance
	}
	if opts.MinConfidence > 0 {
		merged.MinConfidence = opts.MinConfidence
	}
	return matching.New(merged, s.log)
}

func athleteIDParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("athlete_id")
	if raw == "" {
		return 0, errMissingAthleteID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errMissingAthleteID
	}
	return id, nil
}

var errMissingAthleteID = errParam("athlete_id parameter required")

type errParam string

func (e errParam) Error() string { return string(e) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}

	if startStr == "" {
		// Default: 30 days back from the end
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return
}
