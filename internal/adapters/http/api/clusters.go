package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/pipeline"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// ClustersDependencies defines what the cluster handlers need.
type ClustersDependencies interface {
	Clusters(withCurve bool) ([]types.ClusterSummary, error)
	Rebuild(ctx context.Context) (*pipeline.Snapshot, error)
	PlaceJob(ctx context.Context, job model.JobRecord) (types.Placement, error)
	Assignments(ctx context.Context, runID string) ([]types.Assignment, error)
}

// ClustersHandler serves the current clustering and triggers rebuilds.
type ClustersHandler struct {
	deps   ClustersDependencies
	logger logger.Logger
}

// NewClustersHandler creates a new clusters handler.
func NewClustersHandler(deps ClustersDependencies, l logger.Logger) *ClustersHandler {
	return &ClustersHandler{deps: deps, logger: l}
}

type clustersResponse struct {
	Clusters []types.ClusterSummary `json:"clusters"`
}

type rebuildResponse struct {
	RunID      string                 `json:"run_id"`
	BuiltAt    time.Time              `json:"built_at"`
	Jobs       int                    `json:"jobs"`
	Iterations int                    `json:"iterations"`
	Converged  bool                   `json:"converged"`
	Inertia    float64                `json:"inertia"`
	Clusters   []types.ClusterSummary `json:"clusters"`
}

type jobRequest struct {
	JobID             string   `json:"job_id"`
	Location          string   `json:"location"`
	JobType           string   `json:"job_type"`
	Skills            []string `json:"skills"`
	YearsOfExperience float64  `json:"years_of_experience"`
}

type assignmentsResponse struct {
	RunID       string             `json:"run_id"`
	Assignments []types.Assignment `json:"assignments"`
}

// HandleGetClusters handles GET /clusters[?curve=true] requests.
func (h *ClustersHandler) HandleGetClusters(w http.ResponseWriter, r *http.Request) {
	const op = "api.clusters"
	withCurve := false
	if v := r.URL.Query().Get("curve"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		withCurve = b
	}
	sums, err := h.deps.Clusters(withCurve)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, clustersResponse{Clusters: sums})
}

// HandleRebuild handles POST /rebuild requests.
func (h *ClustersHandler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	const op = "api.rebuild"
	snap, err := h.deps.Rebuild(r.Context())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	h.logger.Info(r.Context(), "catalog rebuilt", logger.String("run_id", snap.RunID.String()))
	writeJSON(w, http.StatusOK, rebuildResponse{
		RunID:      snap.RunID.String(),
		BuiltAt:    snap.BuiltAt,
		Jobs:       len(snap.Jobs),
		Iterations: snap.Iterations,
		Converged:  snap.Converged,
		Inertia:    snap.Inertia,
		Clusters:   snap.Summaries(false),
	})
}

// HandlePlace handles POST /clusters/place requests.
func (h *ClustersHandler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	const op = "api.place"
	var req jobRequest
	if err := decode(op, r, placeSchema, &req); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.deps.PlaceJob(r.Context(), model.JobRecord{
		ID:                req.JobID,
		Location:          req.Location,
		JobType:           req.JobType,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
	})
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleAssignments handles GET /runs/{run_id}/assignments requests.
func (h *ClustersHandler) HandleAssignments(w http.ResponseWriter, r *http.Request) {
	const op = "api.assignments"
	runID := strings.TrimSpace(r.PathValue("run_id"))
	if runID == "" {
		writeError(w, NewKind(op, ErrBadRequest))
		return
	}
	assignments, err := h.deps.Assignments(r.Context(), runID)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, assignmentsResponse{RunID: runID, Assignments: assignments})
}
