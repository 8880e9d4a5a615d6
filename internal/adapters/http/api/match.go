package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// MatchDependencies defines what the match handlers need.
type MatchDependencies interface {
	Match(ctx context.Context, candidate model.Candidate) (types.Recommendation, error)
	MatchBatch(ctx context.Context, candidates []model.Candidate) ([]model.MatchOutcome, error)
	RecommendForCandidate(ctx context.Context, candidateID string) (types.Recommendation, error)
}

// MatchHandler handles candidate matching requests.
type MatchHandler struct {
	deps   MatchDependencies
	logger logger.Logger
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies, l logger.Logger) *MatchHandler {
	return &MatchHandler{deps: deps, logger: l}
}

// candidateRequest mirrors the OpenAPI schema for a candidate.
type candidateRequest struct {
	CandidateID       string   `json:"candidate_id"`
	YearsOfExperience float64  `json:"years_of_experience"`
	Location          string   `json:"location"`
	Skills            []string `json:"skills"`
}

func (c candidateRequest) candidate() model.Candidate {
	return model.Candidate{
		ID:                c.CandidateID,
		YearsOfExperience: c.YearsOfExperience,
		Location:          c.Location,
		Skills:            c.Skills,
	}
}

type batchRequest struct {
	Candidates []candidateRequest `json:"candidates"`
}

type batchResult struct {
	CandidateID    string                `json:"candidate_id,omitempty"`
	Recommendation *types.Recommendation `json:"recommendation,omitempty"`
	Error          *errorResponse        `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchResult `json:"results"`
}

// HandleMatch handles POST /match requests.
func (h *MatchHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.match"
	var req candidateRequest
	if err := decode(op, r, matchSchema, &req); err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.deps.Match(r.Context(), req.candidate())
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleMatchBatch handles POST /match/batch requests. Per-candidate
// failures are reported inline; only a rejected batch fails the request.
func (h *MatchHandler) HandleMatchBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.match_batch"
	var req batchRequest
	if err := decode(op, r, batchSchema, &req); err != nil {
		writeError(w, err)
		return
	}

	candidates := make([]model.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		candidates[i] = c.candidate()
	}
	outcomes, err := h.deps.MatchBatch(r.Context(), candidates)
	if err != nil {
		h.logger.Warn(r.Context(), "batch failed", logger.Int("size", len(candidates)), logger.Error(err))
		writeError(w, Wrap(op, err))
		return
	}

	resp := batchResponse{Results: make([]batchResult, len(outcomes))}
	for i, o := range outcomes {
		res := batchResult{CandidateID: candidates[i].ID}
		if o.Err != nil {
			_, code := status(Wrap(op, o.Err))
			res.Error = &errorResponse{Code: code, Message: o.Err.Error()}
		} else {
			rec := o.Recommendation
			res.Recommendation = &rec
		}
		resp.Results[i] = res
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRecommendation handles GET /recommendations/{candidate_id} requests.
func (h *MatchHandler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommendation"
	id := strings.TrimSpace(r.PathValue("candidate_id"))
	if id == "" {
		writeError(w, NewKind(op, ErrBadRequest))
		return
	}
	rec, err := h.deps.RecommendForCandidate(r.Context(), id)
	if err != nil {
		writeError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
