package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/pkg/logx"
)

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated account.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Recruiter   *Recruiter `json:"recruiter"`
}

// AuthHandlers exposes the authentication endpoints.
type AuthHandlers struct {
	tokenService  TokenService
	recruiterRepo RecruiterRepository
	passwordSvc   PasswordService
}

// NewAuthHandlers wires the auth endpoints to their collaborators.
func NewAuthHandlers(tokenService TokenService, recruiterRepo RecruiterRepository, passwordSvc PasswordService) *AuthHandlers {
	return &AuthHandlers{
		tokenService:  tokenService,
		recruiterRepo: recruiterRepo,
		passwordSvc:   passwordSvc,
	}
}

// RegisterRoutes mounts /auth/login and /auth/me.
func (h *AuthHandlers) RegisterRoutes(app *fiber.App, middleware *TokenMiddleware) {
	group := app.Group("/auth")
	group.Post("/login", h.Login)
	group.Get("/me", middleware.Handle(), h.Me)
}

// POST /auth/login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return ErrInvalidRequest().WithDetail("reason", "email and password are required")
	}

	recruiter, err := h.recruiterRepo.FindByEmail(c.Context(), toEmail(req.Email))
	if err != nil {
		// Same response for unknown email and bad password.
		return ErrInvalidCredentials()
	}
	if !h.passwordSvc.Verify(recruiter.PasswordHash, req.Password) {
		return ErrInvalidCredentials()
	}
	if !recruiter.Active {
		return ErrRecruiterInactive()
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(recruiter.ID, recruiter.Email, recruiter.Scopes())
	if err != nil {
		return err
	}

	logx.Infof("Recruiter %s logged in", recruiter.ID)

	return c.JSON(LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Recruiter:   recruiter,
	})
}

// GET /auth/me
func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	authCtx, ok := GetAuthContext(c)
	if !ok {
		return ErrMissingToken()
	}

	recruiter, err := h.recruiterRepo.FindByID(c.Context(), authCtx.RecruiterID)
	if err != nil {
		return err
	}

	return c.JSON(recruiter)
}

func toEmail(s string) kernel.Email {
	return kernel.Email(strings.ToLower(strings.TrimSpace(s)))
}
