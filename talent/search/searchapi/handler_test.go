package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/iam/auth"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/fit"
	"github.com/talentwire/scout/talent/search"
	"github.com/talentwire/scout/talent/search/searchsrv"
)

type routeRepo struct {
	pool []candidate.Candidate
}

func (r *routeRepo) ListActive(ctx context.Context) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, len(r.pool))
	copy(out, r.pool)
	return out, nil
}

func (r *routeRepo) FindByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	for i := range r.pool {
		if r.pool[i].ID == id {
			clone := r.pool[i]
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("candidate %s not found", id)
}

func (r *routeRepo) Save(ctx context.Context, c *candidate.Candidate) error {
	return errors.New("not implemented")
}

func (r *routeRepo) Update(ctx context.Context, id kernel.CandidateID, c *candidate.Candidate) error {
	return errors.New("not implemented")
}

func (r *routeRepo) FindByEmail(ctx context.Context, email kernel.Email) (*candidate.Candidate, error) {
	return nil, errors.New("not implemented")
}

func (r *routeRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	return nil, errors.New("not implemented")
}

func (r *routeRepo) Delete(ctx context.Context, id kernel.CandidateID) error {
	return errors.New("not implemented")
}

func (r *routeRepo) UpsertProfileEmbedding(ctx context.Context, id kernel.CandidateID, embedding kernel.ProfileEmbedding) error {
	return errors.New("not implemented")
}

func (r *routeRepo) FindSimilar(ctx context.Context, id kernel.CandidateID, limit int) ([]candidate.SimilarCandidate, error) {
	return nil, errors.New("not implemented")
}

func routePool() []candidate.Candidate {
	return []candidate.Candidate{
		{
			ID:              "cand-maria",
			Name:            "Maria Torres",
			Email:           "maria.torres@example.com",
			Skills:          []string{"react", "typescript"},
			TotalYears:      8,
			ExperienceLevel: candidate.ExperienceLevelSenior,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Location:        "Lima, Peru",
			Status:          candidate.CandidateStatusActive,
		},
		{
			ID:              "cand-lucia",
			Name:            "Lucia Fernandez",
			Email:           "lucia.fernandez@example.com",
			Skills:          []string{"vue.js"},
			TotalYears:      2,
			ExperienceLevel: candidate.ExperienceLevelJunior,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Location:        "Lima, Peru",
			Status:          candidate.CandidateStatusActive,
		},
		{
			ID:              "cand-diego",
			Name:            "Diego Herrera",
			Email:           "diego.herrera@example.com",
			Skills:          []string{"java"},
			TotalYears:      1,
			ExperienceLevel: candidate.ExperienceLevelJunior,
			WorkPreference:  candidate.WorkPreferenceOnSite,
			Location:        "Santiago, Chile",
			JobHistory: []candidate.JobHistoryEntry{
				{Company: "First Co", StartDate: "2023-01", EndDate: "2023-06"},
				{Company: "Second Co", StartDate: "2023-07", EndDate: "2023-12"},
				{Company: "Third Co", StartDate: "2024-01", EndDate: "2024-06"},
			},
			Status: candidate.CandidateStatusActive,
		},
	}
}

// newTestApp wires the handlers into a fiber app the way cmd/server.go
// does, with an in-memory pool behind the service.
func newTestApp() (*fiber.App, *auth.JWTService) {
	repo := &routeRepo{pool: routePool()}
	service := searchsrv.NewService(repo, search.NewExtractor(nil, 0), fit.NewEngine(nil, 0))
	handlers := NewHandlers(service)

	tokens := auth.NewJWTService("test-secret", time.Hour, "scout-test")
	middleware := auth.NewAuthMiddleware(tokens)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*errx.Error); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	RegisterRoutes(app, handlers, middleware)

	return app, tokens
}

func signToken(t *testing.T, tokens *auth.JWTService, scopes ...string) string {
	t.Helper()

	signed, _, err := tokens.GenerateAccessToken(
		kernel.NewRecruiterID("rec-1"),
		kernel.Email("recruiter@example.com"),
		scopes,
	)
	require.NoError(t, err)
	return signed
}

func jsonRequest(t *testing.T, method, path, token string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestSearchRoute_RejectsMissingToken(t *testing.T) {
	app, _ := newTestApp()

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", "", search.FilterRequest{Query: "react developers"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(auth.CodeMissingToken), body.Code)
	assert.Equal(t, string(errx.TypeAuthentication), body.Type)
}

func TestSearchRoute_RejectsMalformedAuthHeader(t *testing.T) {
	app, _ := newTestApp()

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", "", search.FilterRequest{Query: "react developers"})
	req.Header.Set("Authorization", "Token abc123")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(auth.CodeInvalidToken), body.Code)
	assert.Equal(t, "expected 'Bearer <token>'", body.Details["reason"])
}

func TestSearchRoute_RejectsForeignToken(t *testing.T) {
	app, _ := newTestApp()

	foreign := auth.NewJWTService("other-secret", time.Hour, "scout-test")
	token := signToken(t, foreign, auth.ScopeSearchAll)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{Query: "react developers"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(auth.CodeInvalidToken), body.Code)
}

func TestSearchRoute_RejectsMissingScope(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeCandidatesRead)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{Query: "react developers"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(auth.CodeInsufficientScope), body.Code)
	assert.Equal(t, auth.ScopeSearchRun, body.Details["required_scope"])
}

func TestSearchRoute_RunsFilterTurn(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchAll)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{Query: "react developers"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body search.SearchResponse
	decodeJSON(t, resp, &body)

	assert.Equal(t, "default", body.ConversationID)
	assert.Equal(t, 1, body.ConversationTurn)
	assert.Equal(t, 3, body.TotalSearched)
	assert.Equal(t, 1, body.MatchesFound)
	require.Len(t, body.Matches, 1)
	assert.Equal(t, "cand-maria", body.Matches[0].CandidateID)
	require.Len(t, body.Profiles, 1)

	expected := "I found 1 candidate matching your criteria.\n\n" +
		"**Top matches:**\n" +
		"1. **Maria Torres** - 65% match (react)\n\n" +
		"Found 1 person!"
	assert.Equal(t, expected, body.MainResponse)
}

func TestSearchRoute_MinScoreOverride(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchRun)

	floor := 50.0
	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{
		Query:    "react developers",
		MinScore: &floor,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body search.SearchResponse
	decodeJSON(t, resp, &body)

	// The lowered floor admits the transferable-only vue.js match.
	assert.Equal(t, 2, body.MatchesFound)
	require.Len(t, body.Matches, 2)
	assert.Equal(t, "cand-maria", body.Matches[0].CandidateID)
	assert.Equal(t, "cand-lucia", body.Matches[1].CandidateID)
}

func TestSearchRoute_ConversationNarrows(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchRun)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{
		Query:          "react developers",
		ConversationID: "conv-flow",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first search.SearchResponse
	decodeJSON(t, resp, &first)
	require.Equal(t, 1, first.ConversationTurn)

	req = jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{
		Query:          "senior only",
		ConversationID: "conv-flow",
	})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second search.SearchResponse
	decodeJSON(t, resp, &second)

	assert.Equal(t, "conv-flow", second.ConversationID)
	assert.Equal(t, 2, second.ConversationTurn)
	assert.Equal(t, 1, second.TotalSearched)
	require.Len(t, second.Matches, 1)
	assert.Equal(t, "cand-maria", second.Matches[0].CandidateID)
}

func TestSearchRoute_RejectsMalformedBody(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchRun)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"query":`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(search.CodeInvalidRequest), body.Code)
	assert.Contains(t, body.Details, "parse_error")
}

func TestSearchRoute_RejectsEmptyQuery(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchRun)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{Query: "   "})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(search.CodeEmptyQuery), body.Code)
	assert.Equal(t, "no query provided", body.Message)
}

func TestResetRoute(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchAll)

	// Narrow the default conversation first
	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{Query: "react developers"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// An empty body resets the default conversation
	req = httptest.NewRequest(http.MethodPost, "/api/v1/search/reset", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body search.ResetResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Search reset. Ready for a new search.", body.Message)
	assert.Equal(t, 3, body.CandidatesAvailable)
	assert.Equal(t, "default", body.ConversationID)
}

func TestResetRoute_RequiresManageScope(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchRun)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search/reset", token, search.ResetRequest{})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, auth.ScopeSearchManage, body.Details["required_scope"])
}

func TestSummaryRoute(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchAll)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search", token, search.FilterRequest{
		Query:          "react developers",
		ConversationID: "conv-sum",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	req = jsonRequest(t, http.MethodGet, "/api/v1/search/summary?conversation_id=conv-sum", token, nil)
	resp, err = app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body search.SummaryResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "conv-sum", body.ConversationID)
	assert.Equal(t, 1, body.Turns)
	assert.Equal(t, []string{"react developers"}, body.Queries)
	assert.Equal(t, 1, body.CandidatesRemaining)
}

func TestCompanyRoute_StoresProfile(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchCompany)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search/company", token, search.CompanyProfileRequest{
		ConversationID: "conv-co",
		CompanyProfile: fit.CompanyProfile{
			Stage:       "Seed, moving fast",
			TeamDynamic: "Small autonomous squads",
		},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body search.CompanyProfileResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Company profile set", body.Message)
	assert.Equal(t, "conv-co", body.ConversationID)
}

func TestCompanyRoute_RejectsEmptyProfile(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchCompany)

	req := jsonRequest(t, http.MethodPost, "/api/v1/search/company", token, search.CompanyProfileRequest{
		ConversationID: "conv-co",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(search.CodeInvalidRequest), body.Code)
	assert.Contains(t, body.Details, "company_profile")
}

func TestTenureRoute(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeCandidatesRead)

	req := jsonRequest(t, http.MethodGet, "/api/v1/candidates/cand-diego/tenure", token, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body search.TenureResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "cand-diego", body.CandidateID)
	assert.Equal(t, "Diego Herrera", body.CandidateName)
	assert.Equal(t, 3, body.ShortStints)
	assert.Equal(t, search.StabilityHighRisk, body.Stability)
	assert.InDelta(t, 5.0, body.AverageMonths, 1e-9)
}

func TestTenureRoute_UnknownCandidate(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeCandidatesRead)

	req := jsonRequest(t, http.MethodGet, "/api/v1/candidates/cand-ghost/tenure", token, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, string(search.CodeCandidateNotFound), body.Code)
	assert.Equal(t, "cand-ghost", body.Details["candidate_id"])
}

func TestTenureRoute_RequiresCandidatesRead(t *testing.T) {
	app, tokens := newTestApp()
	token := signToken(t, tokens, auth.ScopeSearchAll)

	req := jsonRequest(t, http.MethodGet, "/api/v1/candidates/cand-diego/tenure", token, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body errx.HTTPResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, auth.ScopeCandidatesRead, body.Details["required_scope"])
}
