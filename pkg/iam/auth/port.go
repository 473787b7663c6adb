package auth

import (
	"context"

	"github.com/talentwire/scout/pkg/kernel"
)

// RecruiterRepository provides access to recruiter accounts.
type RecruiterRepository interface {
	// FindByID retrieves a recruiter by ID
	FindByID(ctx context.Context, id kernel.RecruiterID) (*Recruiter, error)

	// FindByEmail retrieves a recruiter by email
	FindByEmail(ctx context.Context, email kernel.Email) (*Recruiter, error)

	// Save persists a new recruiter
	Save(ctx context.Context, recruiter *Recruiter) error
}

// PasswordService hashes and verifies passwords.
type PasswordService interface {
	// Hash derives a storable hash from a plaintext password
	Hash(password string) (string, error)

	// Verify checks a plaintext password against a stored hash
	Verify(hash, password string) bool
}
