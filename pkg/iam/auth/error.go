package auth

import (
	"net/http"

	"github.com/talentwire/scout/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeMissingToken       = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Missing authorization header")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid or expired token")
	CodeRecruiterNotFound  = ErrRegistry.Register("RECRUITER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Recruiter not found")
	CodeRecruiterInactive  = ErrRegistry.Register("RECRUITER_INACTIVE", errx.TypeBusiness, http.StatusForbidden, "Recruiter account is inactive")
	CodeInsufficientScope  = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrRecruiterNotFound() *errx.Error {
	return ErrRegistry.New(CodeRecruiterNotFound)
}

func ErrRecruiterInactive() *errx.Error {
	return ErrRegistry.New(CodeRecruiterInactive)
}

func ErrInsufficientScope() *errx.Error {
	return ErrRegistry.New(CodeInsufficientScope)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
