package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query planned workouts for an athlete. Returns the coach's scheduled sessions with target distance, duration, type, and lifecycle status."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetActivities = mcp.NewTool("get_activities",
	mcp.WithDescription("Query recorded activities for an athlete. Returns device-reported sessions with measured distance (meters), moving time (seconds), and type."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolMatchActivities = mcp.NewTool("match_activities",
	mcp.WithDescription("Correlate recorded activities with planned workouts over a time range. Returns per-activity ranked matches with confidence scores, match tiers (exact/probable/possible/conflict), and field-level discrepancies."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolFindUnmatchedWorkouts = mcp.NewTool("find_unmatched_workouts",
	mcp.WithDescription("Find planned workouts that are past due with no confidently matched activity. These are sessions the athlete likely missed."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetMatchingSummary = mcp.NewTool("get_matching_summary",
	mcp.WithDescription("Aggregate matching report for a time range: totals, counts by match tier, overdue workout count, and plain-language coaching suggestions."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

// --- Tool handlers ---

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	aid := AthleteIDFromContext(ctx)
	workouts, err := h.ds.QueryPlannedWorkouts(ctx, aid, start, end)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	aid := AthleteIDFromContext(ctx)
	activities, err := h.ds.QueryActivities(ctx, aid, start, end)
	if err != nil {
		h.log.Error("mcp get_activities", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(activities)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) matchActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	aid := AthleteIDFromContext(ctx)
	activities, workouts, err := h.loadInputs(ctx, aid, start, end)
	if err != nil {
		h.log.Error("mcp match_activities", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	matches := h.matcher.BatchMatch(activities, workouts)

	result, err := mcp.NewToolResultJSON(matches)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) findUnmatchedWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	aid := AthleteIDFromContext(ctx)
	activities, workouts, err := h.loadInputs(ctx, aid, start, end)
	if err != nil {
		h.log.Error("mcp find_unmatched_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	matches := h.matcher.BatchMatch(activities, workouts)
	unmatched := h.matcher.UnmatchedWorkouts(workouts, matches)

	result, err := mcp.NewToolResultJSON(unmatched)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMatchingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	aid := AthleteIDFromContext(ctx)
	activities, workouts, err := h.loadInputs(ctx, aid, start, end)
	if err != nil {
		h.log.Error("mcp get_matching_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	matches := h.matcher.BatchMatch(activities, workouts)
	report := h.matcher.Summary(activities, workouts, matches)

	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) loadInputs(ctx context.Context, athleteID int64, start, end time.Time) ([]models.RecordedActivity, []models.PlannedWorkout, error) {
	activities, err := h.ds.QueryActivities(ctx, athleteID, start, end)
	if err != nil {
		return nil, nil, err
	}
	workouts, err := h.ds.QueryPlannedWorkouts(ctx, athleteID, start, end)
	if err != nil {
		return nil, nil, err
	}
	return activities, workouts, nil
}
