// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/pipeline"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// maxBodyBytes bounds request bodies read by the JSON handlers.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Match answers one candidate against the current snapshot.
	Match(ctx context.Context, candidate model.Candidate) (types.Recommendation, error)
	// MatchBatch answers many candidates through the worker pool.
	MatchBatch(ctx context.Context, candidates []model.Candidate) ([]model.MatchOutcome, error)
	// RecommendForCandidate matches a stored candidate.
	RecommendForCandidate(ctx context.Context, candidateID string) (types.Recommendation, error)

	// Clusters and Snapshot expose the current build.
	Clusters(withCurve bool) ([]types.ClusterSummary, error)
	Snapshot() *pipeline.Snapshot
	// Rebuild clusters the stored catalog again.
	Rebuild(ctx context.Context) (*pipeline.Snapshot, error)
	// PlaceJob locates a posting in the current build.
	PlaceJob(ctx context.Context, job model.JobRecord) (types.Placement, error)
	// Assignments reads back the persisted labels of a build.
	Assignments(ctx context.Context, runID string) ([]types.Assignment, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	matchHandler    *MatchHandler
	clustersHandler *ClustersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, l logger.Logger) *Server {
	if l == nil {
		l = logger.Nop()
	}
	return &Server{
		healthHandler:   NewHealthHandler(deps),
		statsHandler:    NewStatsHandler(deps),
		matchHandler:    NewMatchHandler(deps, l.Named("api")),
		clustersHandler: NewClustersHandler(deps, l.Named("api")),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /clusters", MetricsMiddleware(s.clustersHandler.HandleGetClusters, "clusters"))
	mux.HandleFunc("POST /clusters/place", MetricsMiddleware(s.clustersHandler.HandlePlace, "clusters_place"))
	mux.HandleFunc("POST /rebuild", MetricsMiddleware(s.clustersHandler.HandleRebuild, "rebuild"))
	mux.HandleFunc("GET /runs/{run_id}/assignments", MetricsMiddleware(s.clustersHandler.HandleAssignments, "assignments"))
	mux.HandleFunc("POST /match", MetricsMiddleware(s.matchHandler.HandleMatch, "match"))
	mux.HandleFunc("POST /match/batch", MetricsMiddleware(s.matchHandler.HandleMatchBatch, "match_batch"))
	mux.HandleFunc("GET /recommendations/{candidate_id}", MetricsMiddleware(s.matchHandler.HandleRecommendation, "recommendations"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code, kind := status(err)
	writeJSON(w, code, errorResponse{Code: kind, Message: err.Error()})
}
