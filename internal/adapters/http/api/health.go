package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/pipeline"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/metrics"
)

// SnapshotProvider exposes the current build.
type SnapshotProvider interface {
	Snapshot() *pipeline.Snapshot
}

// HealthHandler handles liveness and metrics requests.
type HealthHandler struct {
	snapshots SnapshotProvider
	metrics   http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(snapshots SnapshotProvider) *HealthHandler {
	return &HealthHandler{
		snapshots: snapshots,
		metrics:   promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id,omitempty"`
}

// HandleHealth handles GET /healthz requests. The run id is empty until the
// first build succeeds.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	if snap := h.snapshots.Snapshot(); snap != nil {
		resp.RunID = snap.RunID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleMetrics serves the custom Prometheus registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
