// Package loadtest drives a running jobrec service with synthetic candidates
// and checks every recommendation against the published clusters.
package loadtest

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Candidates int           // Number of candidates to generate
	BatchSize  int           // Candidates per POST /match/batch
	Workers    int           // Number of concurrent senders
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Seed for the candidate generator
}

// DefaultConfig returns settings for a small local run.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:9080",
		Candidates: 1000,
		BatchSize:  50,
		Workers:    4,
		Timeout:    10 * time.Second,
		Seed:       7,
	}
}

// Stats holds run statistics.
type Stats struct {
	CandidatesGenerated int
	BatchesSent         int
	BatchesRejected     int
	Matched             int
	Failed              int
	Verified            int
	Mismatches          int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
