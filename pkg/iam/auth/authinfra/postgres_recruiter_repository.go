package authinfra

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/talentwire/scout/pkg/iam/auth"
	"github.com/talentwire/scout/pkg/kernel"
)

type PostgresRecruiterRepository struct {
	db *sqlx.DB
}

func NewPostgresRecruiterRepository(db *sqlx.DB) auth.RecruiterRepository {
	return &PostgresRecruiterRepository{db: db}
}

// FindByID retrieves a recruiter by ID
func (r *PostgresRecruiterRepository) FindByID(ctx context.Context, id kernel.RecruiterID) (*auth.Recruiter, error) {
	query := `
		SELECT id, email, name, password_hash, role, active, created_at, updated_at
		FROM recruiters
		WHERE id = $1
	`

	var rec auth.Recruiter
	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrRecruiterNotFound().WithDetail("recruiter_id", id.String())
		}
		return nil, err
	}

	return &rec, nil
}

// FindByEmail retrieves a recruiter by email
func (r *PostgresRecruiterRepository) FindByEmail(ctx context.Context, email kernel.Email) (*auth.Recruiter, error) {
	query := `
		SELECT id, email, name, password_hash, role, active, created_at, updated_at
		FROM recruiters
		WHERE LOWER(email) = LOWER($1)
	`

	var rec auth.Recruiter
	err := r.db.GetContext(ctx, &rec, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrRecruiterNotFound().WithDetail("email", email.String())
		}
		return nil, err
	}

	return &rec, nil
}

// Save persists a new recruiter
func (r *PostgresRecruiterRepository) Save(ctx context.Context, rec *auth.Recruiter) error {
	query := `
		INSERT INTO recruiters (id, email, name, password_hash, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Email,
		rec.Name,
		rec.PasswordHash,
		rec.Role,
		rec.Active,
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	return err
}
