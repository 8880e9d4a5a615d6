package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/catalog"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// ImportJobs reads a jobs CSV into the store and returns the number of rows.
// The current snapshot is unchanged until the next Rebuild.
func (s *Service) ImportJobs(ctx context.Context, r io.Reader) (int, error) {
	jobs, err := catalog.ReadJobs(r)
	if err != nil {
		return 0, err
	}
	if err := s.store.PutJobs(ctx, jobs); err != nil {
		return 0, fmt.Errorf("store jobs: %w", err)
	}
	return len(jobs), nil
}

// ImportCandidates reads a candidates CSV into the store.
func (s *Service) ImportCandidates(ctx context.Context, r io.Reader) (int, error) {
	candidates, err := catalog.ReadCandidates(r)
	if err != nil {
		return 0, err
	}
	if err := s.store.PutCandidates(ctx, candidates); err != nil {
		return 0, fmt.Errorf("store candidates: %w", err)
	}
	return len(candidates), nil
}

func (s *Service) importSeeds(ctx context.Context) error {
	if s.jobsFile != "" {
		n, err := importFile(ctx, s.jobsFile, s.ImportJobs)
		if err != nil {
			return fmt.Errorf("import %s: %w", s.jobsFile, err)
		}
		s.logger.Info(ctx, "jobs imported", logger.String("file", s.jobsFile), logger.Int("rows", n))
	}
	if s.candidateFile != "" {
		n, err := importFile(ctx, s.candidateFile, s.ImportCandidates)
		if err != nil {
			return fmt.Errorf("import %s: %w", s.candidateFile, err)
		}
		s.logger.Info(ctx, "candidates imported", logger.String("file", s.candidateFile), logger.Int("rows", n))
	}
	return nil
}

func importFile(ctx context.Context, path string, read func(context.Context, io.Reader) (int, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return read(ctx, f)
}
