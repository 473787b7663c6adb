package search

import (
	"context"
	"strings"
	"time"

	"github.com/talentwire/scout/pkg/logx"
	"github.com/talentwire/scout/talent/candidate"
)

const defaultParserTimeout = 8 * time.Second

// extractionSource records which path produced a requirement set. It
// never crosses the package boundary; callers only see the result.
type extractionSource int

const (
	sourceDeterministic extractionSource = iota
	sourceModel
)

// Extractor turns queries into Requirements. With a parser configured
// it tries the model first and validates its output strictly; on any
// error, timeout, or malformed payload it falls back to the keyword
// tables without reporting the failure.
type Extractor struct {
	parser  ModelRequirementParser
	timeout time.Duration
}

// NewExtractor creates an extractor. parser may be nil, in which case
// only the deterministic path runs.
func NewExtractor(parser ModelRequirementParser, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = defaultParserTimeout
	}
	return &Extractor{parser: parser, timeout: timeout}
}

// Extract derives requirements from a query. It never fails.
func (e *Extractor) Extract(ctx context.Context, query string) Requirements {
	reqs, _ := e.extract(ctx, query)
	return reqs
}

func (e *Extractor) extract(ctx context.Context, query string) (Requirements, extractionSource) {
	if e.parser == nil {
		return ExtractRequirements(query), sourceDeterministic
	}

	parseCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	parsed, err := e.parser.ParseQuery(parseCtx, query)
	if err != nil || parsed == nil {
		logx.Debugf("Model extraction unavailable, using keyword tables: %v", err)
		return ExtractRequirements(query), sourceDeterministic
	}

	validated, ok := validateModelRequirements(*parsed)
	if !ok {
		logx.Debugf("Model extraction rejected as malformed, using keyword tables")
		return ExtractRequirements(query), sourceDeterministic
	}

	return validated, sourceModel
}

// validateModelRequirements enforces the model output contract: skills
// must be non-empty concrete technology tokens, enum fields must hold
// known values. One violation discards the whole payload.
func validateModelRequirements(r Requirements) (Requirements, bool) {
	out := Requirements{
		ExperienceLevel: candidate.ExperienceLevelAny,
		WorkPreference:  candidate.WorkPreferenceAny,
	}

	for _, skill := range r.Skills {
		token := strings.ToLower(strings.TrimSpace(skill))
		if token == "" || IsRolePhrase(token) {
			return Requirements{}, false
		}
		out.Skills = append(out.Skills, token)
	}

	switch r.ExperienceLevel {
	case "", candidate.ExperienceLevelAny:
	case candidate.ExperienceLevelJunior, candidate.ExperienceLevelMid, candidate.ExperienceLevelSenior:
		out.ExperienceLevel = r.ExperienceLevel
	default:
		return Requirements{}, false
	}

	switch r.WorkPreference {
	case "", candidate.WorkPreferenceAny:
	case candidate.WorkPreferenceRemote, candidate.WorkPreferenceHybrid, candidate.WorkPreferenceOnSite:
		out.WorkPreference = r.WorkPreference
	default:
		return Requirements{}, false
	}

	out.Location = strings.ToLower(strings.TrimSpace(r.Location))

	return out, true
}
