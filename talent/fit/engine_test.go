package fit

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/scout/talent/candidate"
)

type stubProvider struct {
	vectors map[string][]float32
	fixed   []float32
	err     error
	calls   int
}

func (s *stubProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return s.fixed, nil
}

func TestEngine_Embed_FallbackIsDeterministic(t *testing.T) {
	e := NewEngine(nil, 0)
	ctx := context.Background()

	first := e.Embed(ctx, "senior golang engineer")
	second := e.Embed(ctx, "senior golang engineer")

	require.Len(t, first, 384)
	assert.Equal(t, first, second)
	assert.InDelta(t, 1.0, Cosine(first, second), 1e-9)
}

func TestEngine_Embed_FallbackIgnoresCase(t *testing.T) {
	e := NewEngine(nil, 0)
	ctx := context.Background()

	assert.Equal(t, e.Embed(ctx, "React"), e.Embed(ctx, "react"))
	assert.NotEqual(t, e.Embed(ctx, "react"), e.Embed(ctx, "vue"))
}

func TestEngine_Embed_UsesProviderVector(t *testing.T) {
	provider := &stubProvider{fixed: []float32{0.1, 0.2, 0.3}}
	e := NewEngine(provider, 0)

	vec, source := e.embed(context.Background(), "anything")

	assert.Equal(t, sourceProvider, source)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, 1, provider.calls)
}

func TestEngine_Embed_ProviderErrorFallsBack(t *testing.T) {
	provider := &stubProvider{err: errors.New("quota exceeded")}
	e := NewEngine(provider, 0)

	vec, source := e.embed(context.Background(), "anything")

	assert.Equal(t, sourceFallback, source)
	assert.Len(t, vec, 384)
}

func TestEngine_Embed_EmptyProviderVectorFallsBack(t *testing.T) {
	provider := &stubProvider{}
	e := NewEngine(provider, 0)

	vec, source := e.embed(context.Background(), "anything")

	assert.Equal(t, sourceFallback, source)
	assert.Len(t, vec, 384)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"halfway", []float32{1, 0}, []float32{1, 1}, math.Sqrt2 / 2},
		{"mismatched lengths", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
		{"zero norm", []float32{0, 0}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestEngine_SemanticSkillMatch_EmptyRequired(t *testing.T) {
	e := NewEngine(nil, 0)

	got := e.SemanticSkillMatch(context.Background(), nil, []string{"go"})

	assert.InDelta(t, 100.0, got.Score, 1e-9)
	assert.Empty(t, got.DirectMatches)
	assert.Empty(t, got.MissingSkills)
}

func TestEngine_SemanticSkillMatch_DirectMatch(t *testing.T) {
	e := NewEngine(nil, 0)

	got := e.SemanticSkillMatch(context.Background(), []string{" React "}, []string{"react", "css"})

	assert.Equal(t, []string{"react"}, got.DirectMatches)
	assert.Empty(t, got.SemanticMatches)
	assert.Empty(t, got.MissingSkills)
	assert.InDelta(t, 100.0, got.Score, 1e-9)
}

func TestEngine_SemanticSkillMatch_SemanticCoverWeighted(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{
		"react":  {1, 1},
		"preact": {1, 0},
		"vue":    {0, 1},
	}}
	e := NewEngine(provider, 0)

	got := e.SemanticSkillMatch(context.Background(), []string{"react", "vue"}, []string{"preact"})

	require.Len(t, got.SemanticMatches, 1)
	sm := got.SemanticMatches[0]
	assert.Equal(t, "react", sm.Required)
	assert.Equal(t, "preact", sm.Has)
	assert.InDelta(t, 0.71, sm.Similarity, 1e-9)

	assert.Equal(t, []string{"vue"}, got.MissingSkills)
	assert.InDelta(t, 40.0, got.Score, 1e-9)
}

func TestEngine_SemanticSkillMatch_BelowThresholdIsMissing(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{
		"go":    {1, 0},
		"cobol": {0, 1},
	}}
	e := NewEngine(provider, 0)

	got := e.SemanticSkillMatch(context.Background(), []string{"go"}, []string{"cobol"})

	assert.Empty(t, got.SemanticMatches)
	assert.Equal(t, []string{"go"}, got.MissingSkills)
	assert.InDelta(t, 0.0, got.Score, 1e-9)
}

func TestEngine_SemanticSkillMatch_DirectMatchLeavesSkillAvailable(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{
		"go":     {1, 0},
		"golang": {2, 1},
	}}
	e := NewEngine(provider, 0)

	got := e.SemanticSkillMatch(context.Background(), []string{"go", "golang"}, []string{"go"})

	assert.Equal(t, []string{"go"}, got.DirectMatches)
	require.Len(t, got.SemanticMatches, 1)
	assert.Equal(t, "golang", got.SemanticMatches[0].Required)
	assert.Equal(t, "go", got.SemanticMatches[0].Has)
	assert.InDelta(t, 0.89, got.SemanticMatches[0].Similarity, 1e-9)
	assert.InDelta(t, 90.0, got.Score, 1e-9)
}

func TestEngine_SemanticSkillMatch_CachesSkillVectors(t *testing.T) {
	provider := &stubProvider{fixed: []float32{0.3, 0.4}}
	e := NewEngine(provider, 0)
	ctx := context.Background()

	first := e.SemanticSkillMatch(ctx, []string{"react"}, []string{"vue"})
	callsAfterFirst := provider.calls
	second := e.SemanticSkillMatch(ctx, []string{"react"}, []string{"vue"})

	assert.Equal(t, 2, callsAfterFirst)
	assert.Equal(t, callsAfterFirst, provider.calls)
	assert.Equal(t, first, second)
}

func TestEngine_CultureFit(t *testing.T) {
	candVec := []float32{1, 0}
	compVec := []float32{1, 1}
	cand := &candidate.Candidate{Skills: []string{"go"}}
	company := &CompanyProfile{Stage: "seed"}

	provider := &stubProvider{vectors: map[string][]float32{
		CandidateProfileText(cand):  candVec,
		CompanyProfileText(company): compVec,
	}}
	e := NewEngine(provider, 0)

	got := e.CultureFit(context.Background(), cand, company)

	assert.InDelta(t, 100*math.Sqrt2/2, got, 1e-9)
}

func TestEngine_MissionAlignment_NeutralWhenUnanswered(t *testing.T) {
	e := NewEngine(nil, 0)
	ctx := context.Background()

	noDomain := &candidate.Candidate{}
	withDomain := &candidate.Candidate{Questionnaire: &candidate.Questionnaire{ProblemDomain: "fintech"}}

	assert.InDelta(t, 70.0, e.MissionAlignment(ctx, noDomain, &CompanyProfile{CompanyProblem: "payments"}), 1e-9)
	assert.InDelta(t, 70.0, e.MissionAlignment(ctx, withDomain, nil), 1e-9)
	assert.InDelta(t, 70.0, e.MissionAlignment(ctx, withDomain, &CompanyProfile{}), 1e-9)
}

func TestEngine_MissionAlignment_ComparesDomainTexts(t *testing.T) {
	provider := &stubProvider{vectors: map[string][]float32{
		"fintech":  {2, 0},
		"payments": {1, 0},
	}}
	e := NewEngine(provider, 0)

	cand := &candidate.Candidate{Questionnaire: &candidate.Questionnaire{ProblemDomain: " Fintech "}}
	company := &CompanyProfile{CompanyProblem: "Payments"}

	got := e.MissionAlignment(context.Background(), cand, company)

	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestEngine_MutualFit_AllComponentsAligned(t *testing.T) {
	provider := &stubProvider{fixed: []float32{0.5, 0.5}}
	e := NewEngine(provider, 0)

	cand := &candidate.Candidate{
		Skills:        []string{"go"},
		Questionnaire: &candidate.Questionnaire{ProblemDomain: "payments"},
	}
	company := &CompanyProfile{Stage: "seed", CompanyProblem: "payments"}

	got := e.MutualFit(context.Background(), cand, company, []string{"go"})

	assert.InDelta(t, 100.0, got.OverallFit, 1e-9)
	assert.InDelta(t, 100.0, got.SkillMatch, 1e-9)
	assert.InDelta(t, 100.0, got.CultureFit, 1e-9)
	assert.InDelta(t, 100.0, got.MissionAlignment, 1e-9)
}

func TestEngine_MutualFit_NeutralMissionWithoutCompanyProblem(t *testing.T) {
	provider := &stubProvider{fixed: []float32{0.5, 0.5}}
	e := NewEngine(provider, 0)

	cand := &candidate.Candidate{Skills: []string{"go"}}
	company := &CompanyProfile{Stage: "seed"}

	got := e.MutualFit(context.Background(), cand, company, nil)

	assert.InDelta(t, 100.0, got.SkillMatch, 1e-9)
	assert.InDelta(t, 100.0, got.CultureFit, 1e-9)
	assert.InDelta(t, 70.0, got.MissionAlignment, 1e-9)
	assert.InDelta(t, 94.0, got.OverallFit, 1e-9)
}
