package search

import (
	"net/http"

	"github.com/talentwire/scout/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("SEARCH")

var (
	CodeEmptyQuery        = ErrRegistry.Register("EMPTY_QUERY", errx.TypeValidation, http.StatusBadRequest, "no query provided")
	CodeCandidateNotFound = ErrRegistry.Register("CANDIDATE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "candidate identifier not found")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

func ErrEmptyQuery() *errx.Error {
	return ErrRegistry.New(CodeEmptyQuery)
}

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
