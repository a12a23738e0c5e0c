package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shanebarringer/ultracoach-sub004/internal/ingest"
	"github.com/shanebarringer/ultracoach-sub004/internal/matching"
	"github.com/shanebarringer/ultracoach-sub004/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	ingest  *ingest.Provider
	matcher *matching.Matcher
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, ingestProvider *ingest.Provider, matcher *matching.Matcher, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		ingest:  ingestProvider,
		matcher: matcher,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngest)
	})

	// Matching endpoints: stateless computations over caller-supplied or
	// stored data. Nothing here writes to the database.
	s.router.Route("/api/v1/matching", func(r chi.Router) {
		r.Post("/match", s.handleMatch)
		r.Post("/batch", s.handleBatchMatch)
		r.Post("/unmatched", s.handleUnmatched)
		r.Post("/summary", s.handleSummary)
		r.Get("/run", s.handleRun)
	})

	// Planned-workout reads feed the dashboard and remote MCP mode;
	// plan writes require the API key, like ingest.
	s.router.Route("/api/v1/workouts", func(r chi.Router) {
		r.Get("/", s.handleQueryWorkouts)

		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/", s.handleCreateWorkout)
			r.Patch("/{id}/status", s.handleUpdateWorkoutStatus)
		})
	})
	s.router.Get("/api/v1/activities", s.handleQueryActivities)
}
