package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
	"github.com/shanebarringer/ultracoach-sub004/internal/storage"
)

// Provider processes fitness-service activity export payloads.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new activity-export ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses an export payload and stores the accepted activities for
// the given athlete. Re-delivered activities count as skipped, not errors.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, athleteID int64) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}

	activities, result := Parse(data, athleteID)

	inserted, err := p.db.InsertActivities(ctx, activities)
	if err != nil {
		return result, fmt.Errorf("storing activities: %w", err)
	}
	result.ActivitiesInserted = inserted
	result.ActivitiesSkipped = int64(len(activities)) - inserted

	if result.ActivitiesRejected > 0 {
		result.Message = fmt.Sprintf(
			"%d activities were rejected; see rejected_reasons. Accepted activities are stored.",
			result.ActivitiesRejected)
	}

	p.log.Info("activity ingest",
		"athlete_id", athleteID,
		"received", result.ActivitiesReceived,
		"inserted", result.ActivitiesInserted,
		"skipped", result.ActivitiesSkipped,
		"rejected", result.ActivitiesRejected,
	)
	return result, nil
}

// Parse decodes an export payload into storable activities. Entries with a
// missing ID or an unparseable start date are rejected individually rather
// than failing the whole payload; the reasons land in the Result.
func Parse(data []byte, athleteID int64) ([]models.RecordedActivity, *Result) {
	result := &Result{}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		result.RejectedReasons = append(result.RejectedReasons, "payload is not a JSON array: "+err.Error())
		result.ActivitiesRejected = 1
		return nil, result
	}
	result.ActivitiesReceived = len(raw)

	var activities []models.RecordedActivity
	for i, msg := range raw {
		var e ExportActivity
		if err := json.Unmarshal(msg, &e); err != nil {
			result.ActivitiesRejected++
			result.RejectedReasons = append(result.RejectedReasons,
				fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		a, err := convert(e, athleteID, msg)
		if err != nil {
			result.ActivitiesRejected++
			result.RejectedReasons = append(result.RejectedReasons,
				fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		activities = append(activities, a)
	}
	return activities, result
}

func convert(e ExportActivity, athleteID int64, raw json.RawMessage) (models.RecordedActivity, error) {
	if e.ID == 0 {
		return models.RecordedActivity{}, fmt.Errorf("missing activity id")
	}

	start, err := time.Parse(time.RFC3339, e.StartDate)
	if err != nil {
		// Some exports omit the zone suffix.
		start, err = time.Parse("2006-01-02T15:04:05", e.StartDate)
		if err != nil {
			return models.RecordedActivity{}, fmt.Errorf("activity %d: unparseable start_date %q", e.ID, e.StartDate)
		}
	}

	// sport_type supersedes the legacy type field when both are present.
	actType := e.SportType
	if actType == "" {
		actType = e.Type
	}

	return models.RecordedActivity{
		ID:                 e.ID,
		AthleteID:          athleteID,
		Name:               e.Name,
		StartDate:          start,
		Distance:           e.Distance,
		MovingTime:         e.MovingTime,
		ElapsedTime:        e.ElapsedTime,
		TotalElevationGain: e.TotalElevationGain,
		Type:               actType,
		LocationCity:       e.LocationCity,
		LocationState:      e.LocationState,
		RawJSON:            raw,
	}, nil
}
