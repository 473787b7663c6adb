package auth

import (
	"time"

	"github.com/talentwire/scout/pkg/kernel"
)

// Recruiter is an operator account with access to the sourcing API.
type Recruiter struct {
	ID           kernel.RecruiterID `db:"id" json:"id"`
	Email        kernel.Email       `db:"email" json:"email"`
	Name         string             `db:"name" json:"name"`
	PasswordHash string             `db:"password_hash" json:"-"`
	Role         string             `db:"role" json:"role"`
	Active       bool               `db:"active" json:"active"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

// Scopes resolves the recruiter's role to its scope set. Unknown roles
// get no scopes.
func (r *Recruiter) Scopes() []string {
	return ScopeGroups[r.Role]
}

// AuthContext is what the middleware stores in request locals after a
// token passes validation.
type AuthContext struct {
	RecruiterID kernel.RecruiterID
	Email       kernel.Email
	Scopes      []string
}

// HasScope reports whether the context carries the scope or its domain
// wildcard.
func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope || matchesWildcard(s, scope) {
			return true
		}
	}
	return false
}
