package search

import (
	"strings"

	"github.com/talentwire/scout/talent/candidate"
)

// Requirements is the structured form of one recruiter query.
// Skills are lowercase canonical tokens; empty Location means any.
type Requirements struct {
	Skills          []string                  `json:"skills"`
	ExperienceLevel candidate.ExperienceLevel `json:"experience_level"`
	WorkPreference  candidate.WorkPreference  `json:"work_preference"`
	Location        string                    `json:"location,omitempty"`
}

// HasSkills reports whether the query named at least one skill
func (r Requirements) HasSkills() bool {
	return len(r.Skills) > 0
}

// ExtractRequirements derives structured requirements from a free-text
// query using keyword tables only. It never fails; unmatched fields
// come back as any.
func ExtractRequirements(query string) Requirements {
	q := strings.ToLower(query)

	reqs := Requirements{
		ExperienceLevel: candidate.ExperienceLevelAny,
		WorkPreference:  candidate.WorkPreferenceAny,
	}

	switch {
	case containsAnyWord(q, []string{"senior", "sr", "lead", "principal", "staff"}):
		reqs.ExperienceLevel = candidate.ExperienceLevelSenior
	case containsAnyWord(q, []string{"junior", "jr", "entry", "graduate"}):
		reqs.ExperienceLevel = candidate.ExperienceLevelJunior
	case containsAnyWord(q, []string{"mid", "intermediate"}):
		reqs.ExperienceLevel = candidate.ExperienceLevelMid
	}

	switch {
	case containsAnyWord(q, []string{"remote", "wfh"}):
		reqs.WorkPreference = candidate.WorkPreferenceRemote
	case containsAnyWord(q, []string{"hybrid", "flex", "flexible"}):
		reqs.WorkPreference = candidate.WorkPreferenceHybrid
	case containsAnyWord(q, []string{"on-site", "onsite", "in-office"}):
		reqs.WorkPreference = candidate.WorkPreferenceOnSite
	}

	for _, city := range locationGazetteer {
		if strings.Contains(q, city) {
			reqs.Location = city
			break
		}
	}

	for _, family := range skillVocabulary {
		if containsAnyWord(q, family.variants) {
			reqs.Skills = append(reqs.Skills, family.canonical)
		}
	}

	// Generic role phrases only fill in skills when nothing concrete
	// was named.
	if len(reqs.Skills) == 0 {
		for _, role := range roleExpansions {
			if containsAnyWord(q, role.variants) {
				reqs.Skills = append(reqs.Skills, role.skills...)
				break
			}
		}
	}

	return reqs
}

// mergeRequirements folds per-turn requirements into one combined set.
// Skills union in first-seen order; the scalar fields take the most
// recent turn that set a non-any value.
func mergeRequirements(turns []Turn) Requirements {
	merged := Requirements{
		ExperienceLevel: candidate.ExperienceLevelAny,
		WorkPreference:  candidate.WorkPreferenceAny,
	}

	seen := make(map[string]struct{})
	for _, turn := range turns {
		for _, skill := range turn.Requirements.Skills {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			merged.Skills = append(merged.Skills, skill)
		}

		if turn.Requirements.ExperienceLevel != candidate.ExperienceLevelAny && turn.Requirements.ExperienceLevel != "" {
			merged.ExperienceLevel = turn.Requirements.ExperienceLevel
		}
		if turn.Requirements.WorkPreference != candidate.WorkPreferenceAny && turn.Requirements.WorkPreference != "" {
			merged.WorkPreference = turn.Requirements.WorkPreference
		}
		if turn.Requirements.Location != "" {
			merged.Location = turn.Requirements.Location
		}
	}

	return merged
}
