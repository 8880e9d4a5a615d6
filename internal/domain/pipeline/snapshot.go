package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/clustering"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/encoding"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/matcher"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
)

// Snapshot is the result of one build. It is never modified after Build
// returns and may be shared by concurrent matchers.
type Snapshot struct {
	RunID      uuid.UUID
	BuiltAt    time.Time
	Jobs       []model.JobRecord
	Params     encoding.Params
	Labels     []int
	Clusters   []clustering.Cluster
	Densities  []density.ClusterDensity
	Iterations int
	Converged  bool
	Inertia    float64
	Config     Config

	index map[string]int
}

// Match assigns candidate to the most likely cluster and returns that
// cluster's jobs in catalog order.
func (s *Snapshot) Match(candidate model.Candidate) (types.Recommendation, error) {
	res, err := matcher.Match(candidate.YearsOfExperience, s.Densities)
	if err != nil {
		return types.Recommendation{}, err
	}

	rec := types.Recommendation{
		RunID:       s.RunID.String(),
		CandidateID: candidate.ID,
		Experience:  candidate.YearsOfExperience,
		ClusterID:   res.ClusterID,
		LogDensity:  res.LogDensity,
		Scores:      make([]types.ClusterScore, len(res.Scores)),
	}
	for i, sc := range res.Scores {
		rec.Scores[i] = types.ClusterScore{ClusterID: sc.ClusterID, LogDensity: sc.LogDensity}
	}
	members := matcher.Members(s.Jobs, s.Labels, res.ClusterID)
	rec.Jobs = make([]types.JobView, len(members))
	for i, j := range members {
		rec.Jobs[i] = View(j)
	}
	return rec, nil
}

// Label returns the cluster of jobID.
func (s *Snapshot) Label(jobID string) (int, bool) {
	i, ok := s.index[jobID]
	if !ok {
		return 0, false
	}
	return s.Labels[i], true
}

// Place locates a job posting in this build. A posting whose id is in the
// catalog keeps its label; any other is encoded with the catalog's scaling
// and assigned to its nearest centroid.
func (s *Snapshot) Place(job model.JobRecord) (types.Placement, error) {
	p := types.Placement{RunID: s.RunID.String(), JobID: job.ID}
	if id, ok := s.Label(job.ID); ok {
		p.ClusterID, p.InCatalog = id, true
	} else {
		row, err := s.Params.Transform(job)
		if err != nil {
			return types.Placement{}, err
		}
		centroids := make([][]float64, len(s.Clusters))
		for i, c := range s.Clusters {
			centroids[i] = c.Centroid
		}
		p.ClusterID, p.Distance = clustering.Nearest(row, centroids)
	}
	_, p.Eligible = s.Density(p.ClusterID)
	return p, nil
}

// Density returns the fitted density of cluster id, if it is eligible.
func (s *Snapshot) Density(id int) (density.ClusterDensity, bool) {
	for _, d := range s.Densities {
		if d.ClusterID == id {
			return d, true
		}
	}
	return density.ClusterDensity{}, false
}

// Summaries describes every cluster of the build. Curves are sampled for
// eligible clusters with spread when withCurve is set.
func (s *Snapshot) Summaries(withCurve bool) []types.ClusterSummary {
	out := make([]types.ClusterSummary, len(s.Clusters))
	for i, c := range s.Clusters {
		sum := types.ClusterSummary{ID: c.ID, Size: len(c.Members), JobIDs: make([]string, len(c.Members))}
		for j, m := range c.Members {
			sum.JobIDs[j] = s.Jobs[m].ID
		}
		if d, ok := s.Density(c.ID); ok {
			mean, std := d.Mean, d.Std
			sum.Eligible = true
			sum.Mean = &mean
			sum.Std = &std
			if withCurve && d.Std > 0 {
				lo, hi := density.Range(d)
				for _, p := range density.Curve(d, lo, hi, s.Config.CurvePoints) {
					sum.Curve = append(sum.Curve, types.CurvePoint{X: p.X, Y: p.Y})
				}
			}
		}
		out[i] = sum
	}
	return out
}

// View converts a record to its presentation shape.
func View(j model.JobRecord) types.JobView {
	skills := make([]string, len(j.Skills))
	copy(skills, j.Skills)
	return types.JobView{
		ID:                j.ID,
		Location:          j.Location,
		JobType:           j.JobType,
		Skills:            skills,
		YearsOfExperience: j.YearsOfExperience,
	}
}
