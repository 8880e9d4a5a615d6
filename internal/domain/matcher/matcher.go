// Package matcher picks the cluster whose fitted experience density is
// highest at a candidate's value.
package matcher

import (
	"fmt"
	"math"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/density"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

// Score is one eligible cluster's log-density at the candidate value.
type Score struct {
	ClusterID  int
	LogDensity float64
}

// Result is the winning cluster and every score that was compared.
type Result struct {
	ClusterID  int
	LogDensity float64
	Scores     []Score
}

// Match evaluates every density at value in log space and returns the
// highest. Exact ties, including every score being -Inf, go to the lowest
// cluster id regardless of input order.
func Match(value float64, densities []density.ClusterDensity) (Result, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Result{}, fmt.Errorf("%w: candidate value %v is not finite", model.ErrConfiguration, value)
	}
	if len(densities) == 0 {
		return Result{}, model.ErrNoEligibleCluster
	}

	res := Result{ClusterID: -1, Scores: make([]Score, len(densities))}
	for i, d := range densities {
		lp := density.LogPDF(d, value)
		res.Scores[i] = Score{ClusterID: d.ClusterID, LogDensity: lp}
		if res.ClusterID < 0 || lp > res.LogDensity || (lp == res.LogDensity && d.ClusterID < res.ClusterID) {
			res.ClusterID = d.ClusterID
			res.LogDensity = lp
		}
	}
	return res, nil
}

// Members returns the jobs labeled id, in catalog order.
func Members(jobs []model.JobRecord, labels []int, id int) []model.JobRecord {
	out := make([]model.JobRecord, 0)
	for i, l := range labels {
		if l == id && i < len(jobs) {
			out = append(out, jobs[i])
		}
	}
	return out
}
