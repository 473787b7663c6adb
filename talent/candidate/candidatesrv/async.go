package candidatesrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/fit"
)

const maxIndexAttempts = 3

// enqueueIndexJob queues a profile (re)index for the candidate. Failures
// are logged, not returned: the candidate row is already durable and the
// vector can be rebuilt on the next write.
func (s *Service) enqueueIndexJob(ctx context.Context, id kernel.CandidateID) {
	if s.queue == nil {
		return
	}

	job := &candidate.ProfileIndexJob{
		ID:          uuid.NewString(),
		CandidateID: id,
		MaxAttempts: maxIndexAttempts,
		EnqueuedAt:  time.Now(),
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		logx.Warnf("Failed to enqueue index job: CandidateID=%s, Error=%v", id, err)
	}
}

// ProcessIndexJob rebuilds one candidate's profile embedding. Called by
// the index workers; failed jobs are re-enqueued with exponential
// backoff until MaxAttempts is reached.
func (s *Service) ProcessIndexJob(ctx context.Context, job *candidate.ProfileIndexJob) error {
	logx.Infof("Indexing candidate profile: CandidateID=%s, Attempt=%d/%d",
		job.CandidateID, job.AttemptCount+1, job.MaxAttempts)

	c, err := s.repo.FindByID(ctx, job.CandidateID)
	if err != nil {
		// The candidate may have been deleted between enqueue and
		// processing; nothing left to index.
		logx.Warnf("Skipping index job, candidate not found: %s", job.CandidateID)
		return nil
	}

	if s.embedGen == nil {
		return candidate.ErrEmbeddingUnavailable().
			WithDetail("candidate_id", job.CandidateID.String())
	}

	profileText := fit.CandidateProfileText(c)

	vector, err := s.embedGen.GenerateEmbedding(ctx, profileText)
	if err != nil {
		return s.handleIndexError(ctx, job, "embedding_failed", err)
	}

	if err := s.repo.UpsertProfileEmbedding(ctx, job.CandidateID, kernel.ProfileEmbedding(vector)); err != nil {
		return s.handleIndexError(ctx, job, "store_failed", err)
	}

	logx.Infof("Candidate profile indexed: CandidateID=%s", job.CandidateID)
	return nil
}

// handleIndexError applies the retry policy to a failed index job
func (s *Service) handleIndexError(ctx context.Context, job *candidate.ProfileIndexJob, errorType string, err error) error {
	job.AttemptCount++

	if job.CanRetry() {
		delay := job.RetryDelay()
		logx.Warnf("Index job failed, will retry: CandidateID=%s, Attempt=%d/%d, Delay=%v, Error=%v",
			job.CandidateID, job.AttemptCount, job.MaxAttempts, delay, err)

		if queueErr := s.queue.EnqueueDelayed(ctx, job, delay); queueErr != nil {
			logx.Errorf("Failed to enqueue index retry: %v", queueErr)
			return candidate.ErrQueueEnqueueFailed().
				WithDetail("candidate_id", job.CandidateID.String()).
				WithDetail("error", queueErr.Error())
		}

		return candidate.ErrRegistry.NewWithCause(candidate.CodeProfileIndexFailed, err).
			WithDetail("candidate_id", job.CandidateID.String()).
			WithDetail("error_type", errorType).
			WithDetail("will_retry", true)
	}

	logx.Errorf("Index job permanently failed: CandidateID=%s, Attempts=%d, Error=%v",
		job.CandidateID, job.AttemptCount, err)

	return candidate.ErrRegistry.NewWithCause(candidate.CodeProfileIndexFailed, err).
		WithDetail("candidate_id", job.CandidateID.String()).
		WithDetail("error_type", errorType).
		WithDetail("final_attempt", job.AttemptCount)
}

// QueueStats reports index queue depths for monitoring
func (s *Service) QueueStats(ctx context.Context) (map[string]any, error) {
	if s.queue == nil {
		return map[string]any{"enabled": false}, nil
	}
	return s.queue.Stats(ctx)
}
