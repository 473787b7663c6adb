package candidate

import (
	"net/http"

	"github.com/talentwire/scout/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeEmailAlreadyExists       = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Email already registered")
	CodeCandidateAlreadyArchived = ErrRegistry.Register("ALREADY_ARCHIVED", errx.TypeConflict, http.StatusConflict, "Candidate is already archived")
	CodeCandidateNotArchived     = ErrRegistry.Register("NOT_ARCHIVED", errx.TypeBusiness, http.StatusBadRequest, "Candidate is not archived")
	CodeInvalidEmail             = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email format")
	CodeInvalidRequest           = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeValidationFailed         = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeInvalidPagination        = ErrRegistry.Register("INVALID_PAGINATION", errx.TypeValidation, http.StatusBadRequest, "Invalid pagination parameters")
	CodeUnsupportedFileType      = ErrRegistry.Register("UNSUPPORTED_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unsupported resume file type")
	CodeResumeParseFailed        = ErrRegistry.Register("RESUME_PARSE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to parse resume")
	CodeSnapshotInvalid          = ErrRegistry.Register("SNAPSHOT_INVALID", errx.TypeValidation, http.StatusBadRequest, "Snapshot payload is not a candidate list")
	CodeEmbeddingUnavailable     = ErrRegistry.Register("EMBEDDING_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Embedding provider unavailable")
	CodeQueueEnqueueFailed       = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to enqueue indexing job")
	CodeImportUnavailable        = ErrRegistry.Register("IMPORT_UNAVAILABLE", errx.TypeBusiness, http.StatusServiceUnavailable, "Resume import is not configured")
	CodeProfileIndexFailed       = ErrRegistry.Register("PROFILE_INDEX_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to index candidate profile")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrCandidateAlreadyArchived() *errx.Error {
	return ErrRegistry.New(CodeCandidateAlreadyArchived)
}

func ErrCandidateNotArchived() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotArchived)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidPagination() *errx.Error {
	return ErrRegistry.New(CodeInvalidPagination)
}

func ErrUnsupportedFileType() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFileType)
}

func ErrResumeParseFailed() *errx.Error {
	return ErrRegistry.New(CodeResumeParseFailed)
}

func ErrSnapshotInvalid() *errx.Error {
	return ErrRegistry.New(CodeSnapshotInvalid)
}

func ErrEmbeddingUnavailable() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingUnavailable)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}

func ErrImportUnavailable() *errx.Error {
	return ErrRegistry.New(CodeImportUnavailable)
}

func ErrProfileIndexFailed() *errx.Error {
	return ErrRegistry.New(CodeProfileIndexFailed)
}
