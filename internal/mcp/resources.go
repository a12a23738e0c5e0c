package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	aid := AthleteIDFromContext(ctx)

	end := time.Now()
	start := end.AddDate(0, 0, -14)

	activities, workouts, err := h.loadInputs(ctx, aid, start, end)
	if err != nil {
		return nil, err
	}

	matches := h.matcher.BatchMatch(activities, workouts)
	report := h.matcher.Summary(activities, workouts, matches)

	summary := map[string]any{
		"period_start": start.Format("2006-01-02"),
		"period_end":   end.Format("2006-01-02"),
		"report":       report,
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
