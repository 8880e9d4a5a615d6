package loadtest

import (
	"fmt"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/matcher"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
)

// verifier recomputes each decision from the published cluster summaries.
type verifier struct {
	densities []density.ClusterDensity
	members   map[int][]string
}

func newVerifier(clusters []types.ClusterSummary) (*verifier, error) {
	v := &verifier{members: make(map[int][]string, len(clusters))}
	for _, c := range clusters {
		v.members[c.ID] = c.JobIDs
		if !c.Eligible || c.Mean == nil || c.Std == nil {
			continue
		}
		v.densities = append(v.densities, density.ClusterDensity{
			ClusterID: c.ID,
			Mean:      *c.Mean,
			Std:       *c.Std,
			Count:     c.Size,
		})
	}
	if len(v.densities) == 0 {
		return nil, fmt.Errorf("no eligible clusters published")
	}
	return v, nil
}

// check returns an error describing the first disagreement between rec and
// the published clusters. Recommended jobs must be a prefix of the cluster's
// members since the service may cap the list.
func (v *verifier) check(rec *types.Recommendation) error {
	want, err := matcher.Match(rec.Experience, v.densities)
	if err != nil {
		return err
	}
	if want.ClusterID != rec.ClusterID {
		return fmt.Errorf("candidate %s: cluster %d, expected %d", rec.CandidateID, rec.ClusterID, want.ClusterID)
	}

	members := v.members[rec.ClusterID]
	if len(rec.Jobs) > len(members) {
		return fmt.Errorf("candidate %s: %d jobs for a cluster of %d", rec.CandidateID, len(rec.Jobs), len(members))
	}
	for i, j := range rec.Jobs {
		if j.ID != members[i] {
			return fmt.Errorf("candidate %s: job %d is %s, expected %s", rec.CandidateID, i, j.ID, members[i])
		}
	}
	return nil
}
