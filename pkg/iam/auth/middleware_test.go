package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/kernel"
)

func newAuthTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*errx.Error); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
}

func TestHandle_StoresAuthContext(t *testing.T) {
	svc := NewJWTService("unit-secret", time.Hour, "scout-test")
	middleware := NewAuthMiddleware(svc)

	app := newAuthTestApp()
	app.Get("/probe", middleware.Handle(), func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "auth context missing")
		}
		return c.JSON(fiber.Map{
			"recruiter_id": authCtx.RecruiterID,
			"email":        authCtx.Email,
			"scopes":       authCtx.Scopes,
		})
	})

	token, _, err := svc.GenerateAccessToken(kernel.NewRecruiterID("rec-9"), kernel.Email("dana@example.com"), []string{ScopeSearchRun})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		RecruiterID string   `json:"recruiter_id"`
		Email       string   `json:"email"`
		Scopes      []string `json:"scopes"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()

	assert.Equal(t, "rec-9", body.RecruiterID)
	assert.Equal(t, "dana@example.com", body.Email)
	assert.Equal(t, []string{ScopeSearchRun}, body.Scopes)
}

func TestHandle_RejectsEmptyBearer(t *testing.T) {
	svc := NewJWTService("unit-secret", time.Hour, "scout-test")
	middleware := NewAuthMiddleware(svc)

	app := newAuthTestApp()
	app.Get("/probe", middleware.Handle(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errx.HTTPResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, string(CodeInvalidToken), body.Code)
}

func TestRequireScope_WithoutHandle(t *testing.T) {
	svc := NewJWTService("unit-secret", time.Hour, "scout-test")
	middleware := NewAuthMiddleware(svc)

	// RequireScope wired without Handle finds no auth context
	app := newAuthTestApp()
	app.Get("/probe", middleware.RequireScope(ScopeSearchRun), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errx.HTTPResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, string(CodeMissingToken), body.Code)
}
