package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/synth"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// ErrMismatch reports recommendations that disagree with the published clusters.
var ErrMismatch = errors.New("recommendations disagree with published clusters")

// maxMismatchLogs bounds the per-candidate mismatch log lines.
const maxMismatchLogs = 10

type candidateBody struct {
	CandidateID       string   `json:"candidate_id"`
	YearsOfExperience float64  `json:"years_of_experience"`
	Location          string   `json:"location,omitempty"`
	Skills            []string `json:"skills,omitempty"`
}

type batchBody struct {
	Candidates []candidateBody `json:"candidates"`
}

type batchReply struct {
	Results []struct {
		CandidateID    string                `json:"candidate_id"`
		Recommendation *types.Recommendation `json:"recommendation"`
		Error          *struct {
			Code string `json:"code"`
		} `json:"error"`
	} `json:"results"`
}

// Run executes a complete load run.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Stats, error) { //nolint:gocritic // hugeParam: called once
	if log == nil {
		log = logger.Nop()
	}
	if cfg.BatchSize <= 0 || cfg.Workers <= 0 || cfg.Candidates <= 0 {
		return nil, fmt.Errorf("candidates, batch size and workers must be positive")
	}
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("candidates", cfg.Candidates),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers))

	// Step 1: the service must be up and built
	var health struct {
		Status string `json:"status"`
		RunID  string `json:"run_id"`
	}
	if err := client.getJSON(ctx, "/healthz", &health); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}
	if health.RunID == "" {
		return nil, fmt.Errorf("service has no build yet")
	}

	// Step 2: fetch the clusters the answers will be checked against
	var clusters struct {
		Clusters []types.ClusterSummary `json:"clusters"`
	}
	if err := client.getJSON(ctx, "/clusters", &clusters); err != nil {
		return nil, fmt.Errorf("cluster retrieval failed: %w", err)
	}
	v, err := newVerifier(clusters.Clusters)
	if err != nil {
		return nil, err
	}

	// Step 3: generate candidates
	candidates := synth.New(synth.Config{Candidates: cfg.Candidates, Seed: cfg.Seed}).Candidates()
	stats.CandidatesGenerated = len(candidates)

	// Step 4: submit batches concurrently and verify each answer
	submit(ctx, client, cfg, candidates, v, stats, log)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "final statistics",
		logger.String("runID", health.RunID),
		logger.Int("batchesSent", stats.BatchesSent),
		logger.Int("batchesRejected", stats.BatchesRejected),
		logger.Int("matched", stats.Matched),
		logger.Int("failed", stats.Failed),
		logger.Int("verified", stats.Verified),
		logger.Int("mismatches", stats.Mismatches),
		logger.String("duration", stats.Duration.String()))

	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrMismatch, stats.Mismatches, stats.Matched)
	}
	return stats, ctx.Err()
}

func submit(ctx context.Context, client *HTTPClient, cfg Config, candidates []model.Candidate, //nolint:gocritic // hugeParam: called once
	v *verifier, stats *Stats, log logger.Logger,
) {
	var sent, rejected, matched, failed, verified, mismatches int64

	batches := make(chan []model.Candidate, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				body := batchBody{Candidates: make([]candidateBody, len(batch))}
				for i, c := range batch {
					body.Candidates[i] = candidateBody{
						CandidateID: c.ID, YearsOfExperience: c.YearsOfExperience,
						Location: c.Location, Skills: c.Skills,
					}
				}

				status, raw, err := client.postJSON(ctx, "/match/batch", body)
				atomic.AddInt64(&sent, 1)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, int64(len(batch)))
					continue
				case status == http.StatusTooManyRequests:
					atomic.AddInt64(&rejected, 1)
					continue
				case status != http.StatusOK:
					atomic.AddInt64(&failed, int64(len(batch)))
					continue
				}

				var reply batchReply
				if err := json.Unmarshal(raw, &reply); err != nil {
					atomic.AddInt64(&failed, int64(len(batch)))
					continue
				}
				for _, r := range reply.Results {
					if r.Recommendation == nil {
						atomic.AddInt64(&failed, 1)
						continue
					}
					atomic.AddInt64(&matched, 1)
					if err := v.check(r.Recommendation); err != nil {
						if atomic.AddInt64(&mismatches, 1) <= maxMismatchLogs {
							log.Warn(ctx, "recommendation mismatch", logger.Error(err))
						}
						continue
					}
					atomic.AddInt64(&verified, 1)
				}
			}
		}()
	}

	go func() {
		defer close(batches)
		for start := 0; start < len(candidates); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(candidates))
			select {
			case <-ctx.Done():
				return
			case batches <- candidates[start:end]:
			}
		}
	}()
	wg.Wait()

	stats.BatchesSent = int(sent)
	stats.BatchesRejected = int(rejected)
	stats.Matched = int(matched)
	stats.Failed = int(failed)
	stats.Verified = int(verified)
	stats.Mismatches = int(mismatches)
}
