package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// TokenMiddleware guards routes with bearer-token authentication.
type TokenMiddleware struct {
	tokenService TokenService
}

// NewAuthMiddleware creates the middleware around a token service.
func NewAuthMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

// Handle validates the bearer token and stores the auth context in locals.
func (m *TokenMiddleware) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrMissingToken()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ErrInvalidToken().WithDetail("reason", "expected 'Bearer <token>'")
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			RecruiterID: claims.RecruiterID,
			Email:       claims.Email,
			Scopes:      claims.Scopes,
		})

		return c.Next()
	}
}

// RequireScope returns a handler that rejects requests whose auth
// context lacks the scope. Must run after Handle.
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !authCtx.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetAuthContext extracts the auth context set by Handle.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

func matchesWildcard(held, wanted string) bool {
	if !strings.HasSuffix(held, ":*") {
		return false
	}
	domain := strings.TrimSuffix(held, ":*")
	return strings.HasPrefix(wanted, domain+":")
}
