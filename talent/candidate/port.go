package candidate

import (
	"context"
	"time"

	"github.com/talentwire/scout/pkg/kernel"
)

// Repository provides access to candidate records.
type Repository interface {
	// Save persists a new candidate
	Save(ctx context.Context, c *Candidate) error

	// Update persists changes to an existing candidate
	Update(ctx context.Context, id kernel.CandidateID, c *Candidate) error

	// FindByID retrieves a candidate by ID
	FindByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// FindByEmail retrieves a candidate by email
	FindByEmail(ctx context.Context, email kernel.Email) (*Candidate, error)

	// List returns a page of candidates, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Candidate], error)

	// ListActive returns every active candidate in insertion order.
	// This is the pool progressive searches run against.
	ListActive(ctx context.Context) ([]Candidate, error)

	// Delete removes a candidate permanently
	Delete(ctx context.Context, id kernel.CandidateID) error

	// UpsertProfileEmbedding stores or replaces the candidate's profile vector
	UpsertProfileEmbedding(ctx context.Context, id kernel.CandidateID, embedding kernel.ProfileEmbedding) error

	// FindSimilar returns the closest candidates to the anchor by stored
	// profile vector, excluding the anchor itself
	FindSimilar(ctx context.Context, id kernel.CandidateID, limit int) ([]SimilarCandidate, error)
}

// IndexQueue carries profile-index jobs to the background workers.
type IndexQueue interface {
	// Enqueue adds a job to the ready queue
	Enqueue(ctx context.Context, job *ProfileIndexJob) error

	// EnqueueDelayed schedules a job for later processing (retries)
	EnqueueDelayed(ctx context.Context, job *ProfileIndexJob, delay time.Duration) error

	// Dequeue blocks up to timeout for the next job; both return values
	// are nil when the timeout elapses with an empty queue
	Dequeue(ctx context.Context, timeout time.Duration) (*ProfileIndexJob, error)

	// MoveDelayedToReady promotes due delayed jobs to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Stats reports queue depths
	Stats(ctx context.Context) (map[string]any, error)
}

// EmbeddingGenerator produces dense vectors for profile text.
type EmbeddingGenerator interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
