package searchsrv

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/fit"
	"github.com/talentwire/scout/talent/search"
)

// DefaultConversationID groups requests that did not name a conversation
const DefaultConversationID = "default"

// profilePreviewCount is how many top matches the conversational reply
// describes and the profiles field carries.
const profilePreviewCount = 3

// conversationState is one recruiter conversation: the progressive
// session, the optional company profile, and a guard serializing turns.
type conversationState struct {
	mu      sync.Mutex
	session *search.Session
	company *fit.CompanyProfile
}

// Service hosts progressive search conversations over the active
// candidate pool. Conversations are created lazily; each one loads the
// pool once at creation and narrows it turn by turn.
type Service struct {
	candidateRepo candidate.Repository
	extractor     *search.Extractor
	engine        *fit.Engine

	mu            sync.Mutex
	conversations map[kernel.ConversationID]*conversationState

	// engineMu serializes fit engine calls; the engine's skill cache is
	// shared across conversations and not safe for concurrent use.
	engineMu sync.Mutex
}

// NewService creates a new search service
func NewService(candidateRepo candidate.Repository, extractor *search.Extractor, engine *fit.Engine) *Service {
	return &Service{
		candidateRepo: candidateRepo,
		extractor:     extractor,
		engine:        engine,
		conversations: make(map[kernel.ConversationID]*conversationState),
	}
}

// Search runs one filter turn in a conversation. A reset flag clears
// the conversation before the query runs; a stored company profile
// enriches every returned match with fit scores.
func (s *Service) Search(ctx context.Context, req search.FilterRequest) (*search.SearchResponse, error) {
	convID := normalizeConversationID(req.ConversationID)

	state, err := s.conversation(ctx, convID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if req.ResetConversation {
		state.session.Reset()
	}

	minScore := search.DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	result, err := state.session.FilterWithOptions(ctx, req.Query, minScore)
	if err != nil {
		return nil, err
	}

	if state.company != nil && len(result.Matches) > 0 {
		s.enrichMatches(ctx, state, result)
	}

	logx.Infof("Search turn complete: ConversationID=%s, Turn=%d, Matches=%d", convID, result.ConversationTurn, result.MatchesFound)

	return &search.SearchResponse{
		RankedResult:   *result,
		ConversationID: convID.String(),
		MainResponse:   mainResponse(result),
		Profiles:       topProfiles(result.Matches),
	}, nil
}

// SetCompanyProfile stores the company side of fit scoring for a
// conversation. It overwrites any previous profile and applies from the
// next search turn.
func (s *Service) SetCompanyProfile(ctx context.Context, req search.CompanyProfileRequest) (*search.CompanyProfileResponse, error) {
	if req.CompanyProfile.IsEmpty() {
		return nil, search.ErrInvalidRequest().WithDetail("company_profile", "at least one profile field is required")
	}

	convID := normalizeConversationID(req.ConversationID)

	state, err := s.conversation(ctx, convID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	profile := req.CompanyProfile
	state.company = &profile
	state.mu.Unlock()

	logx.Infof("Company profile set: ConversationID=%s", convID)

	return &search.CompanyProfileResponse{
		Status:         "success",
		Message:        "Company profile set",
		ConversationID: convID.String(),
	}, nil
}

// ResetConversation clears a conversation's filters and narrowed pool.
// The company profile survives a reset.
func (s *Service) ResetConversation(ctx context.Context, req search.ResetRequest) (*search.ResetResponse, error) {
	convID := normalizeConversationID(req.ConversationID)

	state, err := s.conversation(ctx, convID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	state.session.Reset()
	available := len(state.session.Pool())
	state.mu.Unlock()

	logx.Infof("Conversation reset: ConversationID=%s", convID)

	return &search.ResetResponse{
		Status:              "success",
		Message:             "Search reset. Ready for a new search.",
		CandidatesAvailable: available,
		ConversationID:      convID.String(),
	}, nil
}

// Summary reports the conversation so far
func (s *Service) Summary(ctx context.Context, conversationID string) (*search.SummaryResponse, error) {
	convID := normalizeConversationID(conversationID)

	state, err := s.conversation(ctx, convID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	summary := state.session.Summary()
	state.mu.Unlock()

	return &search.SummaryResponse{
		ConversationID: convID.String(),
		SessionSummary: summary,
	}, nil
}

// CandidateTenure analyzes a candidate's job stability from their
// recorded history.
func (s *Service) CandidateTenure(ctx context.Context, id kernel.CandidateID) (*search.TenureResponse, error) {
	c, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, search.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}

	analysis := search.AnalyzeTenure(c.JobHistory)

	return &search.TenureResponse{
		CandidateID:    id.String(),
		CandidateName:  c.Name,
		TenureAnalysis: analysis,
	}, nil
}

// conversation returns the state for an id, creating it on first use.
// Creation loads the candidate pool; conversations start rarely enough
// that holding the map lock across the load is fine.
func (s *Service) conversation(ctx context.Context, id kernel.ConversationID) (*conversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.conversations[id]; ok {
		return state, nil
	}

	pool, err := s.candidateRepo.ListActive(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load candidate pool", errx.TypeInternal)
	}

	state := &conversationState{
		session: search.NewSession(pool, s.extractor),
	}
	s.conversations[id] = state

	logx.Infof("Conversation started: ConversationID=%s, PoolSize=%d", id, len(pool))
	return state, nil
}

// enrichMatches fills fit scores into each returned match and re-sorts
// by overall fit. The session pool backs the candidate lookups, so an
// id that fell out of the pool keeps its skill-only score.
func (s *Service) enrichMatches(ctx context.Context, state *conversationState, result *search.RankedResult) {
	pool := state.session.Pool()
	byID := make(map[string]*candidate.Candidate, len(pool))
	for i := range pool {
		byID[pool[i].ID.String()] = &pool[i]
	}

	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	for i := range result.Matches {
		m := &result.Matches[i]
		cand, ok := byID[m.CandidateID]
		if !ok {
			continue
		}

		fitScore := s.engine.MutualFit(ctx, cand, state.company, result.CombinedRequirements.Skills)
		m.CultureFit = &fitScore.CultureFit
		m.MissionAlignment = &fitScore.MissionAlignment
		m.OverallFit = &fitScore.OverallFit
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return fitSortKey(result.Matches[i]) > fitSortKey(result.Matches[j])
	})
}

// fitSortKey orders enriched matches; unenriched ones fall back to the
// skill score.
func fitSortKey(m search.MatchResult) float64 {
	if m.OverallFit != nil {
		return *m.OverallFit
	}
	return m.Score
}

// mainResponse renders the result as a short conversational reply
func mainResponse(result *search.RankedResult) string {
	total := result.MatchesFound
	if total == 0 {
		return "I couldn't find any candidates matching those criteria. Try being less specific or reset the search to start fresh."
	}

	plural := "s"
	if total == 1 {
		plural = ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d candidate%s matching your criteria.", total, plural)

	if len(result.Matches) > 0 {
		b.WriteString("\n\n**Top matches:**")
		for i, m := range topProfiles(result.Matches) {
			score := m.Score
			if m.OverallFit != nil {
				score = *m.OverallFit
			}

			skillStr := "various skills"
			if len(m.MatchedSkills) > 0 {
				shown := m.MatchedSkills
				if len(shown) > profilePreviewCount {
					shown = shown[:profilePreviewCount]
				}
				skillStr = strings.Join(shown, ", ")
			}

			fmt.Fprintf(&b, "\n%d. **%s** - %.0f%% match (%s)", i+1, m.Name, score, skillStr)
		}
	}

	if result.RefinementSuggestion != "" {
		b.WriteString("\n\n")
		b.WriteString(result.RefinementSuggestion)
	}

	return b.String()
}

// topProfiles returns the leading matches for display
func topProfiles(matches []search.MatchResult) []search.MatchResult {
	if len(matches) > profilePreviewCount {
		return matches[:profilePreviewCount]
	}
	return matches
}

func normalizeConversationID(raw string) kernel.ConversationID {
	id := strings.TrimSpace(raw)
	if id == "" {
		return DefaultConversationID
	}
	return kernel.ConversationID(id)
}
