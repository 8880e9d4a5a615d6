package model

import "github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/types"

// MatchTask asks a worker to match one candidate. The outcome is sent on
// Reply, which the submitter must buffer.
type MatchTask struct {
	ID        string
	Candidate Candidate
	Reply     chan<- MatchOutcome
}

// MatchOutcome is a worker's answer to a MatchTask.
type MatchOutcome struct {
	TaskID         string
	Recommendation types.Recommendation
	Err            error
}
