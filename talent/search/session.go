package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/talentwire/scout/talent/candidate"
)

// DefaultMinScore is the skill score below which matches are dropped
// when the merged requirements name skills.
const DefaultMinScore = 60.0

// maxReturnedMatches caps the matches in a response; MatchesFound
// still reports the pre-truncation count.
const maxReturnedMatches = 10

// Turn is one query of a conversation with its extracted requirements
type Turn struct {
	Query        string       `json:"query"`
	Requirements Requirements `json:"requirements"`
}

// Session owns one conversation's progressive narrowing state: the
// turn history and the current result pool. Each filter call composes
// on the previous turn's result set. Not goroutine-safe; the hosting
// layer guards each session.
type Session struct {
	pool       []candidate.Candidate
	extractor  *Extractor
	turns      []Turn
	resultPool []candidate.Candidate
}

// NewSession creates a session over a fixed candidate pool. The pool
// is treated as immutable for the session's lifetime and its order is
// the tie-break order for equal scores.
func NewSession(pool []candidate.Candidate, extractor *Extractor) *Session {
	return &Session{
		pool:      pool,
		extractor: extractor,
	}
}

// Filter applies one query on top of the conversation so far
func (s *Session) Filter(ctx context.Context, query string) (*RankedResult, error) {
	return s.FilterWithOptions(ctx, query, DefaultMinScore)
}

// FilterWithOptions applies one query with an explicit minimum score.
// An empty query is the only error a session reports.
func (s *Session) FilterWithOptions(ctx context.Context, query string, minScore float64) (*RankedResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery()
	}

	reqs := s.extractor.Extract(ctx, query)

	// Specialty reset: a query naming only skills foreign to the
	// conversation so far starts a fresh search instead of blending
	// two unrelated ones.
	if reqs.HasSkills() && len(s.turns) > 0 && !s.overlapsHistory(reqs.Skills) {
		s.turns = nil
		s.resultPool = nil
	}

	s.turns = append(s.turns, Turn{Query: query, Requirements: reqs})
	merged := mergeRequirements(s.turns)

	// First turn and empty previous results search the full pool;
	// otherwise narrowing composes on the previous result set.
	scope := s.resultPool
	if len(s.turns) == 1 || len(scope) == 0 {
		scope = s.pool
	}

	type scoredMatch struct {
		result MatchResult
		raw    float64
	}

	var (
		matches     []scoredMatch
		matchedPool []candidate.Candidate
	)

	for i := range scope {
		cand := &scope[i]
		if !matchesPredicate(cand, merged) {
			continue
		}

		if len(merged.Skills) == 0 {
			matches = append(matches, scoredMatch{result: baseMatchResult(cand), raw: 100})
			matchedPool = append(matchedPool, scope[i])
			continue
		}

		skillScore := ScoreSkills(cand.Skills, merged.Skills)
		if float64(skillScore.Score) < minScore {
			continue
		}

		matches = append(matches, scoredMatch{result: skillMatchResult(cand, skillScore), raw: skillScore.Raw})
		matchedPool = append(matchedPool, scope[i])
	}

	// Banded score first, raw score breaks banded ties, pool order
	// breaks the rest.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].result.Score != matches[j].result.Score {
			return matches[i].result.Score > matches[j].result.Score
		}
		return matches[i].raw > matches[j].raw
	})

	s.resultPool = matchedPool

	top := matches
	if len(top) > maxReturnedMatches {
		top = top[:maxReturnedMatches]
	}
	results := make([]MatchResult, 0, len(top))
	for _, m := range top {
		results = append(results, m.result)
	}

	return &RankedResult{
		ConversationTurn:     len(s.turns),
		Query:                query,
		CombinedRequirements: merged,
		TotalSearched:        len(scope),
		MatchesFound:         len(matches),
		Matches:              results,
		RefinementSuggestion: suggestRefinement(matchedPool, merged.Skills),
	}, nil
}

// Reset clears turn history and the narrowed pool. Idempotent.
func (s *Session) Reset() {
	s.turns = nil
	s.resultPool = nil
}

// Summary reports the conversation so far
func (s *Session) Summary() SessionSummary {
	queries := make([]string, len(s.turns))
	for i, t := range s.turns {
		queries[i] = t.Query
	}

	return SessionSummary{
		Turns:                len(s.turns),
		Queries:              queries,
		CombinedRequirements: mergeRequirements(s.turns),
		CandidatesRemaining:  len(s.resultPool),
	}
}

// Pool returns the full candidate pool the session was created over
func (s *Session) Pool() []candidate.Candidate {
	return s.pool
}

// ResultPool returns the current narrowed pool in pool order
func (s *Session) ResultPool() []candidate.Candidate {
	return s.resultPool
}

// Turns returns the number of retained conversation turns
func (s *Session) Turns() int {
	return len(s.turns)
}

func (s *Session) overlapsHistory(skills []string) bool {
	prior := make(map[string]struct{})
	for _, turn := range s.turns {
		for _, skill := range turn.Requirements.Skills {
			prior[skill] = struct{}{}
		}
	}

	for _, skill := range skills {
		if _, ok := prior[skill]; ok {
			return true
		}
	}
	return false
}

func matchesPredicate(c *candidate.Candidate, merged Requirements) bool {
	if merged.ExperienceLevel != candidate.ExperienceLevelAny && c.ExperienceLevel != merged.ExperienceLevel {
		return false
	}

	// A flexible candidate passes any work preference requirement.
	if merged.WorkPreference != candidate.WorkPreferenceAny &&
		c.WorkPreference != candidate.WorkPreferenceFlexible &&
		c.WorkPreference != merged.WorkPreference {
		return false
	}

	if merged.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(merged.Location)) {
		return false
	}

	return true
}

func newMatchResult(c *candidate.Candidate) MatchResult {
	return MatchResult{
		CandidateID:       c.ID.String(),
		Name:              c.Name,
		Email:             c.Email.String(),
		Phone:             c.Phone.String(),
		Skills:            c.Skills,
		ExperienceYears:   c.TotalYears,
		ExperienceLevel:   c.ExperienceLevel,
		WorkPreference:    c.WorkPreference,
		Location:          c.Location,
		HourlyRate:        c.HourlyRate,
		SalaryExpectation: c.SalaryExpectation,
		Bio:               c.Bio,
	}
}

// baseMatchResult is used when the merged requirements name no skills
func baseMatchResult(c *candidate.Candidate) MatchResult {
	m := newMatchResult(c)
	m.Score = 100

	m.MatchedSkills = c.Skills
	if len(m.MatchedSkills) > 3 {
		m.MatchedSkills = m.MatchedSkills[:3]
	}
	m.Reasoning = fmt.Sprintf("%s has %d years of experience.", c.Name, c.TotalYears)

	return m
}

func skillMatchResult(c *candidate.Candidate, score SkillScore) MatchResult {
	m := newMatchResult(c)
	m.Score = float64(score.Score)
	m.MatchedSkills = score.Direct
	m.TransferableSkills = score.Transferable
	m.MissingSkills = score.Missing
	m.Reasoning = buildReasoning(c, score)

	return m
}

func buildReasoning(c *candidate.Candidate, score SkillScore) string {
	var parts []string

	if len(score.Direct) > 0 {
		matched := score.Direct
		if len(matched) > 3 {
			matched = matched[:3]
		}
		switch len(matched) {
		case 1:
			parts = append(parts, fmt.Sprintf("Knows %s", matched[0]))
		case 2:
			parts = append(parts, fmt.Sprintf("Knows %s and %s", matched[0], matched[1]))
		default:
			parts = append(parts, fmt.Sprintf("Knows %s, %s, and more", matched[0], matched[1]))
		}
	}

	if len(score.Transferable) > 0 {
		t := score.Transferable[0]
		parts = append(parts, fmt.Sprintf("Has experience with %s which is similar to %s", t.Has, t.Required))
	}

	years := c.TotalYears
	switch {
	case years == 1:
		parts = append(parts, "1 year in the field")
	case years < 3:
		parts = append(parts, fmt.Sprintf("%d years in the field", years))
	case years < 7:
		parts = append(parts, fmt.Sprintf("%d years doing this", years))
	default:
		parts = append(parts, fmt.Sprintf("%d years of solid experience", years))
	}

	return strings.Join(parts, ". ") + "."
}

// suggestRefinement produces the follow-up hint attached to every
// result: broaden on zero matches, narrow on large result sets using
// skills the matches share that the recruiter has not asked for yet.
func suggestRefinement(matched []candidate.Candidate, currentSkills []string) string {
	if len(matched) == 0 {
		return "No matches yet. Try being less specific or change what you're looking for."
	}

	if len(matched) > 5 {
		current := make(map[string]struct{}, len(currentSkills))
		for _, s := range currentSkills {
			current[strings.ToLower(s)] = struct{}{}
		}

		counts := make(map[string]int)
		for i := range matched {
			for _, skill := range matched[i].Skills {
				lower := strings.ToLower(skill)
				if _, ok := current[lower]; ok {
					continue
				}
				counts[lower]++
			}
		}

		if len(counts) > 0 {
			type skillCount struct {
				skill string
				count int
			}
			ranked := make([]skillCount, 0, len(counts))
			for s, c := range counts {
				ranked = append(ranked, skillCount{skill: s, count: c})
			}
			sort.Slice(ranked, func(i, j int) bool {
				if ranked[i].count != ranked[j].count {
					return ranked[i].count > ranked[j].count
				}
				return ranked[i].skill < ranked[j].skill
			})
			if len(ranked) > 3 {
				ranked = ranked[:3]
			}

			names := make([]string, len(ranked))
			for i, r := range ranked {
				names[i] = r.skill
			}
			return fmt.Sprintf("That's %d people. Want to narrow it down? Many of them also know %s.", len(matched), strings.Join(names, ", "))
		}

		return fmt.Sprintf("That's %d people. You could narrow it down by being more specific about what you need.", len(matched))
	}

	if len(matched) == 1 {
		return "Found 1 person!"
	}
	return fmt.Sprintf("Found %d good matches!", len(matched))
}
