package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu          sync.RWMutex
	jobs        []model.JobRecord
	jobIndex    map[string]int
	candidates  []model.Candidate
	candIndex   map[string]int
	assignments map[string][]Assignment
	closed      bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobIndex:    make(map[string]int),
		candIndex:   make(map[string]int),
		assignments: make(map[string][]Assignment),
	}
}

func (s *MemoryStore) PutJobs(_ context.Context, jobs []model.JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, j := range jobs {
		if j.ID == "" {
			return fmt.Errorf("%w: job without id", ErrInvalid)
		}
	}
	for _, j := range jobs {
		j.Skills = cloneStrings(j.Skills)
		if i, ok := s.jobIndex[j.ID]; ok {
			s.jobs[i] = j
			continue
		}
		s.jobIndex[j.ID] = len(s.jobs)
		s.jobs = append(s.jobs, j)
	}
	return nil
}

func (s *MemoryStore) Jobs(_ context.Context) ([]model.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]model.JobRecord, len(s.jobs))
	for i, j := range s.jobs {
		j.Skills = cloneStrings(j.Skills)
		out[i] = j
	}
	return out, nil
}

func (s *MemoryStore) PutCandidates(_ context.Context, candidates []model.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, c := range candidates {
		if c.ID == "" {
			return fmt.Errorf("%w: candidate without id", ErrInvalid)
		}
	}
	for _, c := range candidates {
		c.Skills = cloneStrings(c.Skills)
		if i, ok := s.candIndex[c.ID]; ok {
			s.candidates[i] = c
			continue
		}
		s.candIndex[c.ID] = len(s.candidates)
		s.candidates = append(s.candidates, c)
	}
	return nil
}

func (s *MemoryStore) Candidate(_ context.Context, id string) (model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.candIndex[id]
	if !ok {
		return model.Candidate{}, fmt.Errorf("candidate %q: %w", id, ErrNotFound)
	}
	c := s.candidates[i]
	c.Skills = cloneStrings(c.Skills)
	return c, nil
}

func (s *MemoryStore) Candidates(_ context.Context) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Candidate, len(s.candidates))
	for i, c := range s.candidates {
		c.Skills = cloneStrings(c.Skills)
		out[i] = c
	}
	return out, nil
}

func (s *MemoryStore) SaveAssignments(_ context.Context, runID string, assignments []Assignment) error {
	if runID == "" {
		return fmt.Errorf("%w: empty run id", ErrInvalid)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[runID] = append([]Assignment(nil), assignments...)
	return nil
}

func (s *MemoryStore) Assignments(_ context.Context, runID string) ([]Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[runID]
	if !ok || len(a) == 0 {
		return nil, fmt.Errorf("run %q: %w", runID, ErrNotFound)
	}
	return append([]Assignment(nil), a...), nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
