// Package repository persists the job catalog, candidates and the cluster
// assignments of each build.
package repository

import (
	"context"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

// Assignment records the cluster a job landed in during one build.
type Assignment struct {
	JobID     string
	ClusterID int
}

// Store provides read/write access to the catalog.
type Store interface {
	// PutJobs inserts or replaces jobs. New jobs are appended to the catalog
	// order; replaced jobs keep their position.
	PutJobs(ctx context.Context, jobs []model.JobRecord) error
	// Jobs returns the catalog in insertion order.
	Jobs(ctx context.Context) ([]model.JobRecord, error)

	// PutCandidates inserts or replaces candidates.
	PutCandidates(ctx context.Context, candidates []model.Candidate) error
	// Candidate returns one candidate or ErrNotFound.
	Candidate(ctx context.Context, id string) (model.Candidate, error)
	// Candidates returns all candidates in insertion order.
	Candidates(ctx context.Context) ([]model.Candidate, error)

	// SaveAssignments stores the labels of one build.
	SaveAssignments(ctx context.Context, runID string, assignments []Assignment) error
	// Assignments returns the labels of a build or ErrNotFound.
	Assignments(ctx context.Context, runID string) ([]Assignment, error)

	// Count returns the number of jobs in the catalog.
	Count(ctx context.Context) int

	Close() error
}
