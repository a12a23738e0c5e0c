package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shanebarringer/ultracoach-sub004/internal/matching"
)

type contextKey int

const athleteIDKey contextKey = iota

// AthleteIDFromContext extracts the athlete ID injected by the transport
// layer, defaulting to 1 for single-athlete setups.
func AthleteIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(athleteIDKey).(int64); ok {
		return id
	}
	return 1
}

// WithAthleteID returns a context carrying the given athlete ID.
func WithAthleteID(ctx context.Context, athleteID int64) context.Context {
	return context.WithValue(ctx, athleteIDKey, athleteID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, matcher *matching.Matcher, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("UltraCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("UltraCoach workout-matching server. Correlate planned workouts with recorded activities, surface discrepancies, and find overdue workouts. All data is scoped to the requested athlete."),
	)

	h := &handlers{ds: ds, matcher: matcher, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetActivities, Handler: h.getActivities},
		server.ServerTool{Tool: toolMatchActivities, Handler: h.matchActivities},
		server.ServerTool{Tool: toolFindUnmatchedWorkouts, Handler: h.findUnmatchedWorkouts},
		server.ServerTool{Tool: toolGetMatchingSummary, Handler: h.getMatchingSummary},
	)

	s.AddResources(
		server.ServerResource{Resource: resRecentSummary, Handler: h.recentSummary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds      DataSource
	matcher *matching.Matcher
	log     *slog.Logger
}

// --- Resource definitions ---

var resRecentSummary = mcp.NewResource(
	"ultracoach://recent_summary",
	"Recent Matching Summary",
	mcp.WithResourceDescription("Matching summary for the last 14 days: tier tallies, overdue workouts, and coaching suggestions"),
	mcp.WithMIMEType("application/json"),
)
