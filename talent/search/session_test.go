package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/candidate"
)

func sessionPool() []candidate.Candidate {
	return []candidate.Candidate{
		{
			ID:              "cand-maria",
			Name:            "Maria Torres",
			Email:           "maria.torres@example.com",
			Skills:          []string{"react", "typescript", "node.js"},
			TotalYears:      8,
			ExperienceLevel: candidate.ExperienceLevelSenior,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Location:        "Lima, Peru",
			Status:          candidate.CandidateStatusActive,
		},
		{
			ID:              "cand-jorge",
			Name:            "Jorge Ramirez",
			Email:           "jorge.ramirez@example.com",
			Skills:          []string{"react", "javascript", "css"},
			TotalYears:      4,
			ExperienceLevel: candidate.ExperienceLevelMid,
			WorkPreference:  candidate.WorkPreferenceHybrid,
			Location:        "Bogota, Colombia",
			Status:          candidate.CandidateStatusActive,
		},
		{
			ID:              "cand-lucia",
			Name:            "Lucia Fernandez",
			Email:           "lucia.fernandez@example.com",
			Skills:          []string{"vue.js", "javascript"},
			TotalYears:      2,
			ExperienceLevel: candidate.ExperienceLevelJunior,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Location:        "Lima, Peru",
			Status:          candidate.CandidateStatusActive,
		},
		{
			ID:              "cand-carlos",
			Name:            "Carlos Mendez",
			Email:           "carlos.mendez@example.com",
			Skills:          []string{"python", "django", "postgresql"},
			TotalYears:      9,
			ExperienceLevel: candidate.ExperienceLevelSenior,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Location:        "Medellin, Colombia",
			Status:          candidate.CandidateStatusActive,
		},
		{
			ID:              "cand-ana",
			Name:            "Ana Castillo",
			Email:           "ana.castillo@example.com",
			Skills:          []string{"react", "typescript", "graphql"},
			TotalYears:      7,
			ExperienceLevel: candidate.ExperienceLevelSenior,
			WorkPreference:  candidate.WorkPreferenceFlexible,
			Location:        "Buenos Aires, Argentina",
			Status:          candidate.CandidateStatusActive,
		},
	}
}

func newTestSession() *Session {
	return NewSession(sessionPool(), NewExtractor(nil, 0))
}

func matchNames(matches []MatchResult) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return names
}

func TestSession_FilterBySkill(t *testing.T) {
	sess := newTestSession()

	res, err := sess.Filter(context.Background(), "react developers")
	require.NoError(t, err)

	assert.Equal(t, 1, res.ConversationTurn)
	assert.Equal(t, 5, res.TotalSearched)
	assert.Equal(t, 3, res.MatchesFound)
	assert.Equal(t, []string{"Maria Torres", "Jorge Ramirez", "Ana Castillo"}, matchNames(res.Matches))
	for _, m := range res.Matches {
		assert.Equal(t, 65.0, m.Score)
	}

	maria := res.Matches[0]
	assert.Equal(t, "cand-maria", maria.CandidateID)
	assert.Equal(t, []string{"react"}, maria.MatchedSkills)
	assert.Empty(t, maria.MissingSkills)
	assert.Equal(t, "Knows react. 8 years of solid experience.", maria.Reasoning)

	assert.Equal(t, "Found 3 good matches!", res.RefinementSuggestion)
}

func TestSession_NarrowingComposesOnPreviousResults(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	_, err := sess.Filter(ctx, "react developers")
	require.NoError(t, err)

	res, err := sess.Filter(ctx, "senior react only")
	require.NoError(t, err)

	assert.Equal(t, 2, res.ConversationTurn)
	assert.Equal(t, 3, res.TotalSearched)
	assert.Equal(t, 2, res.MatchesFound)
	assert.Equal(t, []string{"Maria Torres", "Ana Castillo"}, matchNames(res.Matches))
	assert.Equal(t, []string{"react"}, res.CombinedRequirements.Skills)
	assert.Equal(t, candidate.ExperienceLevelSenior, res.CombinedRequirements.ExperienceLevel)
}

func TestSession_ConstraintTurnKeepsAccumulatedSkills(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	_, err := sess.Filter(ctx, "react developers")
	require.NoError(t, err)

	res, err := sess.Filter(ctx, "remote please")
	require.NoError(t, err)

	assert.Equal(t, 2, res.ConversationTurn)
	assert.Equal(t, []string{"react"}, res.CombinedRequirements.Skills)
	assert.Equal(t, candidate.WorkPreferenceRemote, res.CombinedRequirements.WorkPreference)
	assert.Equal(t, []string{"Maria Torres", "Ana Castillo"}, matchNames(res.Matches))
	for _, m := range res.Matches {
		assert.Equal(t, 65.0, m.Score)
	}
}

func TestSession_DisjointSkillsStartFreshSearch(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	_, err := sess.Filter(ctx, "react developers")
	require.NoError(t, err)

	res, err := sess.Filter(ctx, "python engineers")
	require.NoError(t, err)

	assert.Equal(t, 1, res.ConversationTurn)
	assert.Equal(t, 1, sess.Turns())
	assert.Equal(t, 5, res.TotalSearched)
	assert.Equal(t, 1, res.MatchesFound)
	assert.Equal(t, "Carlos Mendez", res.Matches[0].Name)
	assert.Equal(t, "Knows python. 9 years of solid experience.", res.Matches[0].Reasoning)
	assert.Equal(t, "Found 1 person!", res.RefinementSuggestion)
	assert.Equal(t, []string{"python"}, res.CombinedRequirements.Skills)
}

func TestSession_RankingPrefersDirectCoverage(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	_, err := sess.Filter(ctx, "react developers")
	require.NoError(t, err)

	res, err := sess.Filter(ctx, "react and typescript")
	require.NoError(t, err)

	require.Equal(t, []string{"Maria Torres", "Ana Castillo", "Jorge Ramirez"}, matchNames(res.Matches))
	assert.Equal(t, 99.0, res.Matches[0].Score)
	assert.Equal(t, 99.0, res.Matches[1].Score)
	assert.Equal(t, 98.0, res.Matches[2].Score)

	jorge := res.Matches[2]
	assert.Equal(t, []string{"react"}, jorge.MatchedSkills)
	assert.Equal(t, []TransferableSkill{{Required: "typescript", Has: "javascript"}}, jorge.TransferableSkills)
}

func TestSession_NoSkillQueryMatchesOnConstraints(t *testing.T) {
	sess := newTestSession()

	res, err := sess.Filter(context.Background(), "remote candidates")
	require.NoError(t, err)

	assert.Equal(t, 4, res.MatchesFound)
	assert.Equal(t, []string{"Maria Torres", "Lucia Fernandez", "Carlos Mendez", "Ana Castillo"}, matchNames(res.Matches))
	for _, m := range res.Matches {
		assert.Equal(t, 100.0, m.Score)
	}

	maria := res.Matches[0]
	assert.Equal(t, []string{"react", "typescript", "node.js"}, maria.MatchedSkills)
	assert.Equal(t, "Maria Torres has 8 years of experience.", maria.Reasoning)
	assert.Equal(t, "Found 4 good matches!", res.RefinementSuggestion)
}

func TestSession_FilterWithOptions_LowFloorAdmitsTransferableOnly(t *testing.T) {
	sess := newTestSession()

	res, err := sess.FilterWithOptions(context.Background(), "react developers", 50)
	require.NoError(t, err)

	assert.Equal(t, 4, res.MatchesFound)
	require.Equal(t, []string{"Maria Torres", "Jorge Ramirez", "Ana Castillo", "Lucia Fernandez"}, matchNames(res.Matches))

	lucia := res.Matches[3]
	assert.Equal(t, 55.0, lucia.Score)
	assert.Empty(t, lucia.MatchedSkills)
	assert.Equal(t, []TransferableSkill{{Required: "react", Has: "vue.js"}}, lucia.TransferableSkills)
	assert.Equal(t, "Has experience with vue.js which is similar to react. 2 years in the field.", lucia.Reasoning)
}

func TestSession_FilterWithOptions_FloorIsExclusive(t *testing.T) {
	sess := newTestSession()

	// A candidate scoring exactly the floor is kept; at floor zero even
	// zero-coverage candidates stay in, scored 0 and ranked last.
	res, err := sess.FilterWithOptions(context.Background(), "react developers", 0)
	require.NoError(t, err)

	assert.Equal(t, 5, res.MatchesFound)
	require.Equal(t, []string{"Maria Torres", "Jorge Ramirez", "Ana Castillo", "Lucia Fernandez", "Carlos Mendez"}, matchNames(res.Matches))

	carlos := res.Matches[4]
	assert.Zero(t, carlos.Score)
	assert.Empty(t, carlos.MatchedSkills)
	assert.Equal(t, []string{"react"}, carlos.MissingSkills)
}

func TestSession_FilterWithOptions_HighFloorEmptiesThenRescansFullPool(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	res, err := sess.FilterWithOptions(ctx, "react developers", 70)
	require.NoError(t, err)

	assert.Zero(t, res.MatchesFound)
	assert.Empty(t, res.Matches)
	assert.Equal(t, "No matches yet. Try being less specific or change what you're looking for.", res.RefinementSuggestion)

	res, err = sess.Filter(ctx, "react developers")
	require.NoError(t, err)

	assert.Equal(t, 2, res.ConversationTurn)
	assert.Equal(t, 5, res.TotalSearched)
	assert.Equal(t, 3, res.MatchesFound)
}

func TestSession_EmptyQueryRejected(t *testing.T) {
	sess := newTestSession()

	res, err := sess.Filter(context.Background(), "   ")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Zero(t, sess.Turns())

	var ex *errx.Error
	require.ErrorAs(t, err, &ex)
	assert.Equal(t, CodeEmptyQuery, ex.Code)
}

func TestSession_CapsReturnedMatches(t *testing.T) {
	pool := make([]candidate.Candidate, 14)
	for i := range pool {
		skills := []string{"python"}
		if i%2 == 1 {
			skills = append(skills, "django")
		}
		if i%3 == 0 {
			skills = append(skills, "postgresql")
		}
		pool[i] = candidate.Candidate{
			ID:              kernel.NewCandidateID(fmt.Sprintf("cand-%02d", i)),
			Name:            fmt.Sprintf("Dev %02d", i),
			Email:           kernel.Email(fmt.Sprintf("dev%02d@example.com", i)),
			Skills:          skills,
			TotalYears:      5,
			ExperienceLevel: candidate.ExperienceLevelMid,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Status:          candidate.CandidateStatusActive,
		}
	}
	sess := NewSession(pool, NewExtractor(nil, 0))

	res, err := sess.Filter(context.Background(), "python developers")
	require.NoError(t, err)

	assert.Equal(t, 14, res.MatchesFound)
	require.Len(t, res.Matches, 10)
	assert.Equal(t, "Dev 00", res.Matches[0].Name)
	assert.Equal(t, "Dev 09", res.Matches[9].Name)
	assert.Len(t, sess.ResultPool(), 14)
	assert.Equal(t, "That's 14 people. Want to narrow it down? Many of them also know django, postgresql.", res.RefinementSuggestion)
}

func TestSession_BroadMatchWithoutSharedExtraSkills(t *testing.T) {
	pool := make([]candidate.Candidate, 6)
	for i := range pool {
		pool[i] = candidate.Candidate{
			ID:              kernel.NewCandidateID(fmt.Sprintf("cand-%d", i)),
			Name:            fmt.Sprintf("Dev %d", i),
			Email:           kernel.Email(fmt.Sprintf("dev%d@example.com", i)),
			Skills:          []string{"python"},
			TotalYears:      5,
			ExperienceLevel: candidate.ExperienceLevelMid,
			WorkPreference:  candidate.WorkPreferenceRemote,
			Status:          candidate.CandidateStatusActive,
		}
	}
	sess := NewSession(pool, NewExtractor(nil, 0))

	res, err := sess.Filter(context.Background(), "python devs")
	require.NoError(t, err)

	assert.Equal(t, 6, res.MatchesFound)
	assert.Equal(t, "That's 6 people. You could narrow it down by being more specific about what you need.", res.RefinementSuggestion)
}

func TestSession_Reset(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	_, err := sess.Filter(ctx, "react developers")
	require.NoError(t, err)
	require.Equal(t, 1, sess.Turns())

	sess.Reset()
	sess.Reset() // resetting an already clean session changes nothing

	assert.Zero(t, sess.Turns())
	assert.Empty(t, sess.ResultPool())
	assert.Len(t, sess.Pool(), 5)

	res, err := sess.Filter(ctx, "python engineers")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ConversationTurn)
	assert.Equal(t, 5, res.TotalSearched)
}

func TestSession_Summary(t *testing.T) {
	sess := newTestSession()
	ctx := context.Background()

	_, err := sess.Filter(ctx, "senior react in lima")
	require.NoError(t, err)
	_, err = sess.Filter(ctx, "remote")
	require.NoError(t, err)

	sum := sess.Summary()

	assert.Equal(t, 2, sum.Turns)
	assert.Equal(t, []string{"senior react in lima", "remote"}, sum.Queries)
	assert.Equal(t, []string{"react"}, sum.CombinedRequirements.Skills)
	assert.Equal(t, candidate.ExperienceLevelSenior, sum.CombinedRequirements.ExperienceLevel)
	assert.Equal(t, candidate.WorkPreferenceRemote, sum.CombinedRequirements.WorkPreference)
	assert.Equal(t, "lima", sum.CombinedRequirements.Location)
	assert.Equal(t, 1, sum.CandidatesRemaining)
}
