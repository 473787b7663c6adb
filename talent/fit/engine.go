package fit

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
)

const (
	fallbackDimensions = 384
	semanticThreshold  = 0.65
	semanticWeight     = 0.8

	skillWeight   = 0.45
	cultureWeight = 0.35
	missionWeight = 0.20

	// neutralMissionScore is returned when either side never stated a
	// problem domain, so missing answers neither reward nor punish.
	neutralMissionScore = 70.0

	defaultEmbedTimeout = 10 * time.Second
)

// vectorSource records which path produced a vector. It never leaves
// the package; the public API collapses both paths into one value.
type vectorSource int

const (
	sourceFallback vectorSource = iota
	sourceProvider
)

// Engine computes bidirectional fit between candidates and a company.
// The per-skill vector cache is engine-scoped and not safe for
// concurrent use; callers serialize access to one engine.
type Engine struct {
	provider   EmbeddingProvider
	timeout    time.Duration
	skillCache map[string][]float32
}

// NewEngine builds an engine around an embedding provider. A nil
// provider is valid: every vector then comes from the deterministic
// local encoding.
func NewEngine(provider EmbeddingProvider, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}
	return &Engine{
		provider:   provider,
		timeout:    timeout,
		skillCache: make(map[string][]float32),
	}
}

// Embed returns a vector for the text. When no provider is configured,
// the provider errors, or the call outlives the timeout, the local
// deterministic encoding takes over; callers never see an error.
func (e *Engine) Embed(ctx context.Context, text string) []float32 {
	vec, _ := e.embed(ctx, text)
	return vec
}

func (e *Engine) embed(ctx context.Context, text string) ([]float32, vectorSource) {
	if e.provider == nil {
		return fallbackVector(text), sourceFallback
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	vec, err := e.provider.GenerateEmbedding(ctx, text)
	if err != nil || len(vec) == 0 {
		logx.Debugf("embedding provider unavailable, using local vector: %v", err)
		return fallbackVector(text), sourceFallback
	}
	return vec, sourceProvider
}

// CultureFit scores how close the candidate's profile text sits to the
// company's culture text, on a 0-100 scale.
func (e *Engine) CultureFit(ctx context.Context, c *candidate.Candidate, company *CompanyProfile) float64 {
	candVec := e.Embed(ctx, CandidateProfileText(c))
	compVec := e.Embed(ctx, CompanyProfileText(company))
	return Cosine(candVec, compVec) * 100
}

// MissionAlignment compares the candidate's stated problem interest
// with the problem the company is solving. Neutral when either side
// left the question blank.
func (e *Engine) MissionAlignment(ctx context.Context, c *candidate.Candidate, company *CompanyProfile) float64 {
	domain := ""
	if c.Questionnaire != nil {
		domain = strings.ToLower(strings.TrimSpace(c.Questionnaire.ProblemDomain))
	}
	problem := ""
	if company != nil {
		problem = strings.ToLower(strings.TrimSpace(company.CompanyProblem))
	}

	if domain == "" || problem == "" {
		return neutralMissionScore
	}

	return Cosine(e.Embed(ctx, domain), e.Embed(ctx, problem)) * 100
}

// SemanticSkillMatch covers required skills by direct membership first,
// then by the closest remaining candidate skill in embedding space. A
// semantic cover counts 0.8 of a direct one, and each candidate skill
// covers at most one requirement.
func (e *Engine) SemanticSkillMatch(ctx context.Context, required, candidateSkills []string) SkillMatchResult {
	if len(required) == 0 {
		return SkillMatchResult{Score: 100.0}
	}

	requiredLower := lowerTrimAll(required)
	candidateLower := lowerTrimAll(candidateSkills)

	var result SkillMatchResult

	direct := make(map[string]bool)
	for _, req := range requiredLower {
		if containsSkill(candidateLower, req) {
			result.DirectMatches = append(result.DirectMatches, req)
			direct[req] = true
		}
	}

	consumed := make(map[string]bool)
	for _, req := range requiredLower {
		if direct[req] {
			continue
		}

		reqVec := e.skillVector(ctx, req)

		bestScore := 0.0
		bestSkill := ""
		for _, cand := range candidateLower {
			if consumed[cand] {
				continue
			}
			sim := Cosine(reqVec, e.skillVector(ctx, cand))
			if sim > bestScore && sim >= semanticThreshold {
				bestScore = sim
				bestSkill = cand
			}
		}

		if bestSkill != "" {
			consumed[bestSkill] = true
			result.SemanticMatches = append(result.SemanticMatches, SemanticMatch{
				Required:   req,
				Has:        bestSkill,
				Similarity: math.Round(bestScore*100) / 100,
			})
		} else {
			result.MissingSkills = append(result.MissingSkills, req)
		}
	}

	matched := float64(len(result.DirectMatches)) + float64(len(result.SemanticMatches))*semanticWeight
	score := matched / float64(len(requiredLower)) * 100
	result.Score = round1(math.Min(score, 100))
	return result
}

// MutualFit scores the candidate and the company against each other.
// querySkills is optional; without it the skill component is a neutral
// 100 and culture plus mission carry the score.
func (e *Engine) MutualFit(ctx context.Context, c *candidate.Candidate, company *CompanyProfile, querySkills []string) Result {
	skillScore := 100.0
	if len(querySkills) > 0 {
		skillScore = e.SemanticSkillMatch(ctx, querySkills, c.Skills).Score
	}

	cultureFit := e.CultureFit(ctx, c, company)
	missionScore := e.MissionAlignment(ctx, c, company)

	overall := skillScore*skillWeight + cultureFit*cultureWeight + missionScore*missionWeight

	return Result{
		OverallFit:       round1(overall),
		SkillMatch:       round1(skillScore),
		CultureFit:       round1(cultureFit),
		MissionAlignment: round1(missionScore),
	}
}

// skillVector returns the cached embedding for a skill token, computing
// it on first use.
func (e *Engine) skillVector(ctx context.Context, skill string) []float32 {
	if vec, ok := e.skillCache[skill]; ok {
		return vec
	}
	vec := e.Embed(ctx, skill)
	e.skillCache[skill] = vec
	return vec
}

// Cosine returns the cosine similarity of two vectors. Mismatched
// lengths or zero-norm inputs yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// fallbackVector derives a pseudo-embedding from the text itself. The
// same text always maps to the same vector within a process, so cosine
// self-similarity stays 1.0 even without a provider.
func fallbackVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(text)))

	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	vec := make([]float32, fallbackDimensions)
	for i := range vec {
		vec[i] = float32(rng.NormFloat64())
	}
	return vec
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func lowerTrimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

func containsSkill(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
