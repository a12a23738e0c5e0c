package mcp

import (
	"context"
	"time"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
	"github.com/shanebarringer/ultracoach-sub004/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
// Matching itself always runs in-process; only the inputs travel.
type DataSource interface {
	QueryPlannedWorkouts(ctx context.Context, athleteID int64, start, end time.Time) ([]models.PlannedWorkout, error)
	QueryActivities(ctx context.Context, athleteID int64, start, end time.Time) ([]models.RecordedActivity, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
