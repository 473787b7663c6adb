package candidateapi

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talentwire/scout/pkg/iam/auth"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/candidate/candidatesrv"
)

// maxUploadBytes bounds resume uploads
const maxUploadBytes = 10 * 1024 * 1024

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.Service
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateCandidate creates a new candidate
// POST /api/v1/candidates
func (h *Handlers) CreateCandidate(c *fiber.Ctx) error {
	// Parse request body
	var req candidate.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	response, err := h.service.CreateCandidate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetCandidate retrieves a candidate by ID
// GET /api/v1/candidates/:id
func (h *Handlers) GetCandidate(c *fiber.Ctx) error {
	// Parse candidate ID from URL
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	response, err := h.service.GetCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetCandidateByEmail retrieves a candidate by email
// GET /api/v1/candidates/by-email/:email
func (h *Handlers) GetCandidateByEmail(c *fiber.Ctx) error {
	// Parse email from URL
	email := kernel.Email(strings.ToLower(c.Params("email")))
	if email == "" {
		return candidate.ErrInvalidEmail().WithDetail("email", "missing or empty")
	}

	response, err := h.service.GetCandidateByEmail(c.Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ListCandidates retrieves all candidates with pagination
// GET /api/v1/candidates
func (h *Handlers) ListCandidates(c *fiber.Ctx) error {
	pagination := parsePaginationOptions(c)

	response, err := h.service.ListCandidates(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// UpdateCandidate updates an existing candidate
// PUT /api/v1/candidates/:id
func (h *Handlers) UpdateCandidate(c *fiber.Ctx) error {
	// Parse candidate ID from URL
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	// Parse request body
	var req candidate.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	response, err := h.service.UpdateCandidate(c.Context(), candidateID, req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteCandidate deletes a candidate
// DELETE /api/v1/candidates/:id
func (h *Handlers) DeleteCandidate(c *fiber.Ctx) error {
	// Parse candidate ID from URL
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteCandidate(c.Context(), candidateID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// SimilarCandidates retrieves the profile-vector neighbors of a candidate
// GET /api/v1/candidates/:id/similar?limit=5
func (h *Handlers) SimilarCandidates(c *fiber.Ctx) error {
	// Parse candidate ID from URL
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	limit := c.QueryInt("limit", 0)

	similar, err := h.service.SimilarCandidates(c.Context(), candidateID, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"candidate_id": candidateID,
		"similar":      similar,
	})
}

// ImportResume creates a candidate from an uploaded resume file
// POST /api/v1/candidates/import
func (h *Handlers) ImportResume(c *fiber.Ctx) error {
	// Parse multipart form
	file, err := c.FormFile("file")
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("file", "file is required")
	}

	if file.Size > maxUploadBytes {
		return candidate.ErrInvalidRequest().
			WithDetail("file", "file too large").
			WithDetail("max_size", "10MB").
			WithDetail("size", file.Size)
	}

	// Read uploaded file
	uploaded, err := file.Open()
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("file", "failed to open uploaded file")
	}
	defer uploaded.Close()

	data, err := io.ReadAll(uploaded)
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("file", "failed to read uploaded file")
	}

	response, err := h.service.ImportResume(c.Context(), file.Filename, data)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ImportSnapshot imports a pool snapshot from stored JSON
// POST /api/v1/candidates/snapshot
func (h *Handlers) ImportSnapshot(c *fiber.Ctx) error {
	// Parse request body
	var req candidate.ImportSnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if req.Key == "" {
		return candidate.ErrInvalidRequest().WithDetail("key", "missing or empty")
	}

	response, err := h.service.ImportSnapshot(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/v1/candidates")

	// Read routes
	api.Get("/",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.ListCandidates,
	)

	api.Get("/by-email/:email",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByEmail,
	)

	api.Get("/:id",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidate,
	)

	api.Get("/:id/similar",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.SimilarCandidates,
	)

	// Write routes
	api.Post("/",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.CreateCandidate,
	)

	api.Put("/:id",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UpdateCandidate,
	)

	// Ingestion routes
	api.Post("/import",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesImport),
		handlers.ImportResume,
	)

	api.Post("/snapshot",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesImport),
		handlers.ImportSnapshot,
	)

	// Delete routes
	api.Delete("/:id",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesDelete),
		handlers.DeleteCandidate,
	)
}
