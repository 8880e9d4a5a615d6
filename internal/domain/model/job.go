// Package model contains domain models passed between layers.
package model

// JobRecord is one posting in the catalog. Records are never mutated by the
// pipeline; cluster labels are kept beside them.
type JobRecord struct {
	ID                string   // unique within a catalog
	Location          string   // categorical
	JobType           string   // categorical, e.g. "Full-Time"
	Skills            []string // categorical, one indicator per tag
	YearsOfExperience float64  // scalar used for density fitting
}

// Candidate is the query side of a match. Only YearsOfExperience takes part
// in cluster selection; the rest is carried for display.
type Candidate struct {
	ID                string
	YearsOfExperience float64
	Location          string
	Skills            []string
}
