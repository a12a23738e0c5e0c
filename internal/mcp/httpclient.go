package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shanebarringer/ultracoach-sub004/internal/models"
)

// HTTPClient implements DataSource by calling the UltraCoach REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but data
// lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func rangeParams(athleteID int64, start, end time.Time) url.Values {
	params := url.Values{}
	params.Set("athlete_id", strconv.FormatInt(athleteID, 10))
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))
	return params
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// QueryPlannedWorkouts fetches planned workouts via the REST API.
func (c *HTTPClient) QueryPlannedWorkouts(ctx context.Context, athleteID int64, start, end time.Time) ([]models.PlannedWorkout, error) {
	var workouts []models.PlannedWorkout
	if err := c.getJSON(ctx, "/api/v1/workouts", rangeParams(athleteID, start, end), &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// QueryActivities fetches recorded activities via the REST API.
func (c *HTTPClient) QueryActivities(ctx context.Context, athleteID int64, start, end time.Time) ([]models.RecordedActivity, error) {
	var activities []models.RecordedActivity
	if err := c.getJSON(ctx, "/api/v1/activities", rangeParams(athleteID, start, end), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}
