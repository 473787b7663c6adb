package searchapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentwire/scout/pkg/iam/auth"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/search"
	"github.com/talentwire/scout/talent/search/searchsrv"
)

// Handlers provides HTTP handlers for progressive search operations
type Handlers struct {
	service *searchsrv.Service
}

// NewHandlers creates a new search handlers instance
func NewHandlers(service *searchsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Search runs one filter turn in a conversation
// POST /api/v1/search
func (h *Handlers) Search(c *fiber.Ctx) error {
	// Parse request body
	var req search.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return search.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	// Run the filter turn
	response, err := h.service.Search(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ResetConversation clears a conversation's filters and narrowed pool
// POST /api/v1/search/reset
func (h *Handlers) ResetConversation(c *fiber.Ctx) error {
	// Parse request body; an empty body resets the default conversation
	var req search.ResetRequest
	if err := c.BodyParser(&req); err != nil {
		req = search.ResetRequest{}
	}

	response, err := h.service.ResetConversation(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Summary reports the conversation state so far
// GET /api/v1/search/summary?conversation_id=
func (h *Handlers) Summary(c *fiber.Ctx) error {
	response, err := h.service.Summary(c.Context(), c.Query("conversation_id"))
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// SetCompanyProfile stores the company side of fit scoring
// POST /api/v1/search/company
func (h *Handlers) SetCompanyProfile(c *fiber.Ctx) error {
	// Parse request body
	var req search.CompanyProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return search.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	response, err := h.service.SetCompanyProfile(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// CandidateTenure analyzes a candidate's job stability
// GET /api/v1/candidates/:id/tenure
func (h *Handlers) CandidateTenure(c *fiber.Ctx) error {
	// Parse candidate ID from URL
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID.IsEmpty() {
		return search.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	response, err := h.service.CandidateTenure(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// RegisterRoutes registers all search routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/v1/search")

	api.Post("/",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeSearchRun),
		handlers.Search,
	)

	api.Post("/reset",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeSearchManage),
		handlers.ResetConversation,
	)

	api.Get("/summary",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeSearchManage),
		handlers.Summary,
	)

	api.Post("/company",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeSearchCompany),
		handlers.SetCompanyProfile,
	)

	// Tenure is a read on the candidate resource served by the search
	// domain's analyzer
	app.Get("/api/v1/candidates/:id/tenure",
		authMiddleware.Handle(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.CandidateTenure,
	)
}
