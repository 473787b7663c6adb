package candidatesrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentwire/scout/internal/ai/profileparser"
	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/fsx"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/candidate"
)

const (
	defaultSimilarResults = 5
	maxSimilarResults     = 20
)

// Service provides business operations for candidates
type Service struct {
	repo     candidate.Repository
	parser   *profileparser.ProfileParser
	embedGen candidate.EmbeddingGenerator
	storage  fsx.FileSystem
	queue    candidate.IndexQueue
}

// NewService creates a new candidate service. parser, embedGen, storage
// and queue may be nil when their backing credentials are not
// configured; the operations that need them return a structured error
// instead.
func NewService(
	repo candidate.Repository,
	parser *profileparser.ProfileParser,
	embedGen candidate.EmbeddingGenerator,
	storage fsx.FileSystem,
	queue candidate.IndexQueue,
) *Service {
	return &Service{
		repo:     repo,
		parser:   parser,
		embedGen: embedGen,
		storage:  storage,
		queue:    queue,
	}
}

// CreateCandidate creates a new candidate
func (s *Service) CreateCandidate(ctx context.Context, req candidate.CreateCandidateRequest) (*candidate.CandidateResponse, error) {
	email := kernel.Email(strings.ToLower(strings.TrimSpace(req.Email)))
	if !email.IsValid() {
		return nil, candidate.ErrInvalidEmail().WithDetail("email", req.Email)
	}

	// Check for existing candidate by email
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, candidate.ErrEmailAlreadyExists().
			WithDetail("email", email.String()).
			WithDetail("existing_id", existing.ID.String())
	}

	now := time.Now()
	newCandidate := &candidate.Candidate{
		ID:                kernel.NewCandidateID(uuid.NewString()),
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		Phone:             kernel.Phone(req.Phone),
		Skills:            req.Skills,
		TotalYears:        req.TotalYears,
		ExperienceLevel:   candidate.ExperienceLevel(req.ExperienceLevel),
		WorkPreference:    candidate.WorkPreference(req.WorkPreference),
		Location:          req.Location,
		Bio:               req.Bio,
		HourlyRate:        req.HourlyRate,
		SalaryExpectation: req.SalaryExpectation,
		JobHistory:        req.JobHistory,
		Questionnaire:     req.Questionnaire,
		Status:            candidate.CandidateStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	newCandidate.Normalize(now)

	if err := s.repo.Save(ctx, newCandidate); err != nil {
		return nil, errx.Wrap(err, "failed to save candidate", errx.TypeInternal)
	}

	s.enqueueIndexJob(ctx, newCandidate.ID)

	resp := candidate.ToCandidateResponse(newCandidate)
	return &resp, nil
}

// GetCandidate retrieves a candidate by ID
func (s *Service) GetCandidate(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	resp := candidate.ToCandidateResponse(c)
	return &resp, nil
}

// GetCandidateByEmail retrieves a candidate by email
func (s *Service) GetCandidateByEmail(ctx context.Context, email kernel.Email) (*candidate.CandidateResponse, error) {
	c, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, candidate.ErrCandidateNotFound().WithDetail("email", email.String())
	}

	resp := candidate.ToCandidateResponse(c)
	return &resp, nil
}

// ListCandidates retrieves all candidates with pagination
func (s *Service) ListCandidates(ctx context.Context, pagination kernel.PaginationOptions) (*candidate.PaginatedCandidatesResponse, error) {
	page, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list candidates", errx.TypeInternal)
	}

	responses := make([]candidate.CandidateResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, candidate.ToCandidateResponse(&page.Items[i]))
	}

	return &kernel.Paginated[candidate.CandidateResponse]{
		Items: responses,
		Page:  page.Page,
		Empty: page.Empty,
	}, nil
}

// UpdateCandidate updates an existing candidate
func (s *Service) UpdateCandidate(ctx context.Context, id kernel.CandidateID, req candidate.UpdateCandidateRequest) (*candidate.CandidateResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	// Track whether anything changed, and whether the change touches
	// the fields that feed the profile embedding.
	updated := false
	needsReindex := false

	if req.Name != nil && *req.Name != existing.Name {
		existing.Name = *req.Name
		updated = true
	}
	if req.Phone != nil && kernel.Phone(*req.Phone) != existing.Phone {
		existing.Phone = kernel.Phone(*req.Phone)
		updated = true
	}
	if req.Skills != nil {
		existing.Skills = req.Skills
		updated = true
		needsReindex = true
	}
	if req.TotalYears != nil && *req.TotalYears != existing.TotalYears {
		existing.TotalYears = *req.TotalYears
		updated = true
		needsReindex = true
	}
	if req.ExperienceLevel != nil {
		existing.ExperienceLevel = candidate.ExperienceLevel(*req.ExperienceLevel)
		updated = true
		needsReindex = true
	}
	if req.WorkPreference != nil {
		existing.WorkPreference = candidate.WorkPreference(*req.WorkPreference)
		updated = true
	}
	if req.Location != nil && *req.Location != existing.Location {
		existing.Location = *req.Location
		updated = true
	}
	if req.Bio != nil && *req.Bio != existing.Bio {
		existing.Bio = *req.Bio
		updated = true
	}
	if req.HourlyRate != nil {
		existing.HourlyRate = req.HourlyRate
		updated = true
	}
	if req.SalaryExpectation != nil {
		existing.SalaryExpectation = req.SalaryExpectation
		updated = true
	}
	if req.JobHistory != nil {
		existing.JobHistory = req.JobHistory
		updated = true
		needsReindex = true
	}
	if req.Questionnaire != nil {
		existing.Questionnaire = req.Questionnaire
		updated = true
		needsReindex = true
	}

	if updated {
		existing.UpdatedAt = time.Now()
		existing.Normalize(existing.UpdatedAt)

		if err := s.repo.Update(ctx, id, existing); err != nil {
			return nil, errx.Wrap(err, "failed to update candidate", errx.TypeInternal)
		}

		if needsReindex {
			s.enqueueIndexJob(ctx, id)
		}
	}

	resp := candidate.ToCandidateResponse(existing)
	return &resp, nil
}

// DeleteCandidate deletes a candidate permanently
func (s *Service) DeleteCandidate(ctx context.Context, id kernel.CandidateID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete candidate", errx.TypeInternal)
	}
	return nil
}

// SimilarCandidates returns the stored-vector neighbors of a candidate
func (s *Service) SimilarCandidates(ctx context.Context, id kernel.CandidateID, limit int) ([]candidate.SimilarCandidate, error) {
	if limit < 1 || limit > maxSimilarResults {
		limit = defaultSimilarResults
	}

	// A missing anchor yields an empty set from the vector query, so
	// look the candidate up first to report not-found properly.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	similar, err := s.repo.FindSimilar(ctx, id, limit)
	if err != nil {
		return nil, errx.Wrap(err, "failed to search similar candidates", errx.TypeInternal)
	}
	return similar, nil
}
