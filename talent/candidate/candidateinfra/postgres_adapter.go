package candidateinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/candidate"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) candidate.Repository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `
	id, name, email, phone, skills, total_years,
	experience_level, work_preference, location, bio,
	hourly_rate, salary_expectation, job_history, questionnaire,
	resume_url, status, created_at, updated_at`

// Save persists a new candidate
func (r *PostgresCandidateRepository) Save(ctx context.Context, c *candidate.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, name, email, phone, skills, total_years,
			experience_level, work_preference, location, bio,
			hourly_rate, salary_expectation, job_history, questionnaire,
			resume_url, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18
		)`

	jobHistory, questionnaire, err := marshalProfileColumns(c)
	if err != nil {
		return candidate.ErrValidationFailed().
			WithDetail("candidate_id", c.ID).
			WithDetail("error", err.Error())
	}

	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, nullString(c.Phone.String()), pq.StringArray(c.Skills), c.TotalYears,
		c.ExperienceLevel, c.WorkPreference, nullString(c.Location), nullString(c.Bio),
		c.HourlyRate, c.SalaryExpectation, jobHistory, nullBytes(questionnaire),
		nullString(c.ResumeURL.String()), c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return candidate.ErrEmailAlreadyExists().
				WithDetail("email", c.Email.String())
		}
		return candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("candidate_id", c.ID).
			WithDetail("operation", "insert")
	}

	return nil
}

// Update persists changes to an existing candidate
func (r *PostgresCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	query := `
		UPDATE candidates SET
			name = $2,
			email = $3,
			phone = $4,
			skills = $5,
			total_years = $6,
			experience_level = $7,
			work_preference = $8,
			location = $9,
			bio = $10,
			hourly_rate = $11,
			salary_expectation = $12,
			job_history = $13,
			questionnaire = $14,
			resume_url = $15,
			status = $16,
			updated_at = $17
		WHERE id = $1`

	jobHistory, questionnaire, err := marshalProfileColumns(c)
	if err != nil {
		return candidate.ErrValidationFailed().
			WithDetail("candidate_id", id).
			WithDetail("error", err.Error())
	}

	result, err := r.db.ExecContext(ctx, query,
		id,
		c.Name, c.Email, nullString(c.Phone.String()), pq.StringArray(c.Skills), c.TotalYears,
		c.ExperienceLevel, c.WorkPreference, nullString(c.Location), nullString(c.Bio),
		c.HourlyRate, c.SalaryExpectation, jobHistory, nullBytes(questionnaire),
		nullString(c.ResumeURL.String()), c.Status, c.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return candidate.ErrEmailAlreadyExists().
				WithDetail("email", c.Email.String())
		}
		return candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("candidate_id", id).
			WithDetail("operation", "update")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().
			WithDetail("candidate_id", id)
	}

	return nil
}

// FindByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) FindByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	row := &candidateRow{}
	err := r.db.GetContext(ctx, row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().
				WithDetail("candidate_id", id)
		}
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("candidate_id", id).
			WithDetail("operation", "get")
	}

	return rowToDomain(row)
}

// FindByEmail retrieves a candidate by email
func (r *PostgresCandidateRepository) FindByEmail(ctx context.Context, email kernel.Email) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE LOWER(email) = LOWER($1)`

	row := &candidateRow{}
	err := r.db.GetContext(ctx, row, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().
				WithDetail("email", email.String())
		}
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("email", email.String()).
			WithDetail("operation", "get_by_email")
	}

	return rowToDomain(row)
}

// List retrieves candidates with pagination, newest first
func (r *PostgresCandidateRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidates`); err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("operation", "count")
	}

	offset := (pagination.Page - 1) * pagination.PageSize

	query := `SELECT ` + candidateColumns + `
		FROM candidates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows := []candidateRow{}
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, offset); err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("operation", "list").
			WithDetails(map[string]any{
				"page":      pagination.Page,
				"page_size": pagination.PageSize,
			})
	}

	candidates := make([]candidate.Candidate, 0, len(rows))
	for i := range rows {
		c, err := rowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}

	return kernel.NewPaginated(candidates, pagination.Page, pagination.PageSize, total), nil
}

// ListActive returns every active candidate ordered by registration time.
// Search sessions treat this ordering as the pool order.
func (r *PostgresCandidateRepository) ListActive(ctx context.Context) ([]candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE status = $1
		ORDER BY created_at ASC, id ASC`

	rows := []candidateRow{}
	if err := r.db.SelectContext(ctx, &rows, query, candidate.CandidateStatusActive); err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("operation", "list_active")
	}

	candidates := make([]candidate.Candidate, 0, len(rows))
	for i := range rows {
		c, err := rowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}

	return candidates, nil
}

// Delete removes a candidate permanently
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	query := `DELETE FROM candidates WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("candidate_id", id).
			WithDetail("operation", "delete")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return candidate.ErrCandidateNotFound().
			WithDetail("candidate_id", id)
	}

	return nil
}

// UpsertProfileEmbedding stores or replaces the profile vector for a candidate
func (r *PostgresCandidateRepository) UpsertProfileEmbedding(ctx context.Context, id kernel.CandidateID, embedding kernel.ProfileEmbedding) error {
	query := `
		INSERT INTO candidate_embeddings (candidate_id, embedding, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (candidate_id) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, id, pgvector.NewVector([]float32(embedding)))
	if err != nil {
		return candidate.ErrRegistry.NewWithCause(candidate.CodeEmbeddingUnavailable, err).
			WithDetail("candidate_id", id).
			WithDetail("operation", "upsert_embedding")
	}

	return nil
}

// FindSimilar returns the closest active candidates to the anchor by
// stored profile vector, cosine distance, anchor excluded
func (r *PostgresCandidateRepository) FindSimilar(ctx context.Context, id kernel.CandidateID, limit int) ([]candidate.SimilarCandidate, error) {
	query := `
		SELECT
			c.id, c.name, c.skills, c.experience_level, c.location,
			1 - (e.embedding <=> anchor.embedding) AS similarity
		FROM candidate_embeddings anchor
		JOIN candidate_embeddings e ON e.candidate_id <> anchor.candidate_id
		JOIN candidates c ON c.id = e.candidate_id
		WHERE anchor.candidate_id = $1 AND c.status = $2
		ORDER BY e.embedding <=> anchor.embedding
		LIMIT $3`

	rows := []similarRow{}
	err := r.db.SelectContext(ctx, &rows, query, id, candidate.CandidateStatusActive, limit)
	if err != nil {
		return nil, candidate.ErrRegistry.NewWithCause(candidate.CodeCandidateNotFound, err).
			WithDetail("candidate_id", id).
			WithDetail("operation", "find_similar")
	}

	results := make([]candidate.SimilarCandidate, 0, len(rows))
	for i := range rows {
		results = append(results, rows[i].ToDTO())
	}

	return results, nil
}

func rowToDomain(row *candidateRow) (*candidate.Candidate, error) {
	c, err := row.ToDomain()
	if err != nil {
		return nil, candidate.ErrValidationFailed().
			WithDetail("candidate_id", row.ID).
			WithDetail("error", err.Error())
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
