// Package types contains the shapes returned across the service boundary.
package types

import (
	"encoding/json"
	"math"
)

// JobView is a catalog record as shown to callers.
type JobView struct {
	ID                string   `json:"job_id"`
	Location          string   `json:"location"`
	JobType           string   `json:"job_type"`
	Skills            []string `json:"skills"`
	YearsOfExperience float64  `json:"years_of_experience"`
}

// ClusterScore is one eligible cluster's log-density at the candidate value.
type ClusterScore struct {
	ClusterID  int     `json:"cluster_id"`
	LogDensity float64 `json:"log_density"`
}

// Recommendation is the outcome of matching one candidate.
type Recommendation struct {
	RunID       string         `json:"run_id"`
	CandidateID string         `json:"candidate_id,omitempty"`
	Experience  float64        `json:"years_of_experience"`
	ClusterID   int            `json:"cluster_id"`
	LogDensity  float64        `json:"log_density"`
	Scores      []ClusterScore `json:"scores"`
	Jobs        []JobView      `json:"jobs"`
}

// Placement is the cluster a job posting falls into within one build.
// InCatalog is set when the posting was part of that build; otherwise it
// was placed at its nearest centroid and Distance is the squared distance
// in standardized space.
type Placement struct {
	RunID     string  `json:"run_id"`
	JobID     string  `json:"job_id,omitempty"`
	ClusterID int     `json:"cluster_id"`
	InCatalog bool    `json:"in_catalog"`
	Distance  float64 `json:"distance"`
	Eligible  bool    `json:"eligible"`
}

// Assignment is one job's cluster in a persisted build.
type Assignment struct {
	JobID     string `json:"job_id"`
	ClusterID int    `json:"cluster_id"`
}

// CurvePoint is one sample of a fitted experience density.
type CurvePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ClusterSummary describes one cluster of a build. Mean and Std are set only
// for clusters eligible for matching.
type ClusterSummary struct {
	ID       int          `json:"cluster_id"`
	Size     int          `json:"size"`
	Eligible bool         `json:"eligible"`
	Mean     *float64     `json:"mean,omitempty"`
	Std      *float64     `json:"std,omitempty"`
	JobIDs   []string     `json:"job_ids"`
	Curve    []CurvePoint `json:"curve,omitempty"`
}

// MarshalJSON writes an infinite log-density as null.
func (s ClusterScore) MarshalJSON() ([]byte, error) {
	type alias ClusterScore
	return json.Marshal(struct {
		alias
		LogDensity *float64 `json:"log_density"`
	}{alias(s), finite(s.LogDensity)})
}

// MarshalJSON writes an infinite log-density as null.
func (r Recommendation) MarshalJSON() ([]byte, error) { //nolint:gocritic // hugeParam: value receiver keeps json.Marshal(rec) working
	type alias Recommendation
	return json.Marshal(struct {
		alias
		LogDensity *float64 `json:"log_density"`
	}{alias(r), finite(r.LogDensity)})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
