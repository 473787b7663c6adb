package candidate

import (
	"time"

	"github.com/talentwire/scout/pkg/kernel"
)

// ProfileIndexJob asks the index worker to (re)build the profile
// embedding of one candidate. The job is idempotent: everything it
// needs is re-read from the candidate row, so the payload only carries
// identity and retry state.
type ProfileIndexJob struct {
	ID          string             `json:"id"`
	CandidateID kernel.CandidateID `json:"candidate_id"`

	AttemptCount int `json:"attempt_count"`
	MaxAttempts  int `json:"max_attempts"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// CanRetry reports whether another attempt is allowed.
func (j *ProfileIndexJob) CanRetry() bool {
	return j.AttemptCount < j.MaxAttempts
}

// RetryDelay is the backoff before the next attempt, doubling per attempt.
func (j *ProfileIndexJob) RetryDelay() time.Duration {
	return time.Duration(1<<uint(j.AttemptCount)) * time.Minute
}
