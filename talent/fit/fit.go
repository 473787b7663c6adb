package fit

import (
	"fmt"
	"strings"

	"github.com/talentwire/scout/talent/candidate"
)

// CompanyProfile is the hiring side of the match: the company's culture
// questionnaire, set once per conversation and read by every subsequent
// search. Every field is optional free text.
type CompanyProfile struct {
	Stage                  string `json:"company_stage,omitempty"`
	DecisionMaking         string `json:"decision_making,omitempty"`
	WorkLifeBalance        string `json:"work_life_balance,omitempty"`
	FailureHandling        string `json:"failure_handling,omitempty"`
	SuccessDefinition      string `json:"success_definition,omitempty"`
	LeadershipTransparency string `json:"leadership_transparency,omitempty"`
	TeamDynamic            string `json:"team_dynamic,omitempty"`
	WhyPeopleStay          string `json:"why_people_stay,omitempty"`
	CompanyProblem         string `json:"company_problem,omitempty"`
	DealBreakerValues      string `json:"deal_breaker_values,omitempty"`
}

// IsEmpty reports whether nothing was answered.
func (p *CompanyProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Stage == "" && p.DecisionMaking == "" && p.WorkLifeBalance == "" &&
		p.FailureHandling == "" && p.SuccessDefinition == "" && p.LeadershipTransparency == "" &&
		p.TeamDynamic == "" && p.WhyPeopleStay == "" && p.CompanyProblem == "" &&
		p.DealBreakerValues == ""
}

// Result is the bidirectional fit between one candidate and the
// company, all on a 0-100 scale and rounded to one decimal.
type Result struct {
	OverallFit       float64 `json:"overall_fit"`
	SkillMatch       float64 `json:"skill_match"`
	CultureFit       float64 `json:"culture_fit"`
	MissionAlignment float64 `json:"mission_alignment"`
}

// SemanticMatch pairs a required skill with the candidate skill that
// covered it and how close the two sit in embedding space.
type SemanticMatch struct {
	Required   string  `json:"required"`
	Has        string  `json:"has"`
	Similarity float64 `json:"similarity"`
}

// SkillMatchResult breaks down how the required skills were covered.
type SkillMatchResult struct {
	DirectMatches   []string        `json:"direct_matches"`
	SemanticMatches []SemanticMatch `json:"semantic_matches"`
	MissingSkills   []string        `json:"missing_skills"`
	Score           float64         `json:"skill_score"`
}

// CandidateProfileText flattens a candidate into the text their
// embedding is computed from. Field order is fixed so the same profile
// always yields the same text, and therefore the same fallback vector.
func CandidateProfileText(c *candidate.Candidate) string {
	var parts []string

	if len(c.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(c.Skills, ", "))
	}

	if q := c.Questionnaire; q != nil {
		if q.CareerGoals != "" {
			parts = append(parts, "Career goals: "+q.CareerGoals)
		}
		if q.PreferredEnvironment != "" {
			parts = append(parts, "Work environment: "+q.PreferredEnvironment)
		}
		if q.WorkStyle != "" {
			parts = append(parts, "Work style: "+q.WorkStyle)
		}
		if len(q.WorkplaceValues) > 0 {
			parts = append(parts, "Values: "+strings.Join(q.WorkplaceValues, ", "))
		}
		if q.IdealManager != "" {
			parts = append(parts, "Ideal manager: "+q.IdealManager)
		}
		if q.ProblemDomain != "" {
			parts = append(parts, "Problem interest: "+q.ProblemDomain)
		}
	}

	if c.TotalYears > 0 {
		parts = append(parts, fmt.Sprintf("Experience: %d years", c.TotalYears))
	}
	if c.ExperienceLevel != "" {
		parts = append(parts, "Level: "+string(c.ExperienceLevel))
	}

	if len(parts) == 0 {
		return "No profile data"
	}
	return strings.Join(parts, " | ")
}

// CompanyProfileText flattens the company questionnaire into the text
// its embedding is computed from.
func CompanyProfileText(p *CompanyProfile) string {
	if p == nil {
		return "No company data"
	}

	var parts []string

	if p.Stage != "" {
		parts = append(parts, "Stage: "+p.Stage)
	}
	if p.DecisionMaking != "" {
		parts = append(parts, "Decision making: "+p.DecisionMaking)
	}
	if p.WorkLifeBalance != "" {
		parts = append(parts, "Work-life: "+p.WorkLifeBalance)
	}
	if p.FailureHandling != "" {
		parts = append(parts, "Failure approach: "+p.FailureHandling)
	}
	if p.SuccessDefinition != "" {
		parts = append(parts, "Success means: "+p.SuccessDefinition)
	}
	if p.LeadershipTransparency != "" {
		parts = append(parts, "Leadership: "+p.LeadershipTransparency)
	}
	if p.TeamDynamic != "" {
		parts = append(parts, "Team: "+p.TeamDynamic)
	}
	if p.WhyPeopleStay != "" {
		parts = append(parts, "People stay because: "+p.WhyPeopleStay)
	}
	if p.CompanyProblem != "" {
		parts = append(parts, "Solving: "+p.CompanyProblem)
	}
	if p.DealBreakerValues != "" {
		parts = append(parts, "Won't hire if: "+p.DealBreakerValues)
	}

	if len(parts) == 0 {
		return "No company data"
	}
	return strings.Join(parts, " | ")
}
