package candidate

import (
	"strings"
	"time"

	"github.com/talentwire/scout/pkg/kernel"
)

// CandidateStatus represents the status of a candidate
type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "ACTIVE"   // Part of the searchable pool
	CandidateStatusArchived CandidateStatus = "ARCHIVED" // Kept for history, excluded from search
)

// ExperienceLevel buckets a candidate's seniority.
type ExperienceLevel string

const (
	ExperienceLevelJunior ExperienceLevel = "junior"
	ExperienceLevelMid    ExperienceLevel = "mid"
	ExperienceLevelSenior ExperienceLevel = "senior"

	// ExperienceLevelAny is only valid on the requirement side of a search.
	ExperienceLevelAny ExperienceLevel = "any"
)

// WorkPreference is where a candidate wants to work from.
type WorkPreference string

const (
	WorkPreferenceRemote   WorkPreference = "remote"
	WorkPreferenceHybrid   WorkPreference = "hybrid"
	WorkPreferenceOnSite   WorkPreference = "on-site"
	WorkPreferenceFlexible WorkPreference = "flexible"

	// WorkPreferenceAny is only valid on the requirement side of a search.
	WorkPreferenceAny WorkPreference = "any"
)

type Candidate struct {
	ID                kernel.CandidateID `json:"id"`
	Name              string             `json:"name"`
	Email             kernel.Email       `json:"email"`
	Phone             kernel.Phone       `json:"phone,omitempty"`
	Skills            []string           `json:"skills"`
	TotalYears        int                `json:"total_years"`
	ExperienceLevel   ExperienceLevel    `json:"experience_level"`
	WorkPreference    WorkPreference     `json:"work_preference"`
	Location          string             `json:"location,omitempty"`
	Bio               string             `json:"bio,omitempty"`
	HourlyRate        *float64           `json:"hourly_rate,omitempty"`
	SalaryExpectation *float64           `json:"salary_expectation,omitempty"`
	JobHistory        []JobHistoryEntry  `json:"job_history,omitempty"`
	Questionnaire     *Questionnaire     `json:"questionnaire,omitempty"`
	ResumeURL         kernel.BucketURL   `json:"resume_url,omitempty"`
	Status            CandidateStatus    `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// Questionnaire holds the candidate's self-reported preferences used for
// mutual-fit scoring. Every field is optional.
type Questionnaire struct {
	CareerGoals          string   `json:"career_goals_2_3_years,omitempty"`
	PreferredEnvironment string   `json:"preferred_environment,omitempty"`
	WorkStyle            string   `json:"work_style,omitempty"`
	WorkplaceValues      []string `json:"workplace_values,omitempty"`
	IdealManager         string   `json:"ideal_manager,omitempty"`
	ProblemDomain        string   `json:"problem_domain,omitempty"`
}

// IsEmpty reports whether nothing was answered.
func (q *Questionnaire) IsEmpty() bool {
	if q == nil {
		return true
	}
	return q.CareerGoals == "" && q.PreferredEnvironment == "" && q.WorkStyle == "" &&
		len(q.WorkplaceValues) == 0 && q.IdealManager == "" && q.ProblemDomain == ""
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the candidate is part of the searchable pool
func (c *Candidate) IsActive() bool {
	return c.Status == CandidateStatusActive
}

// IsArchived checks if the candidate is archived
func (c *Candidate) IsArchived() bool {
	return c.Status == CandidateStatusArchived
}

// Archive removes the candidate from the searchable pool
func (c *Candidate) Archive() error {
	if c.IsArchived() {
		return ErrCandidateAlreadyArchived()
	}
	c.Status = CandidateStatusArchived
	c.UpdatedAt = time.Now()
	return nil
}

// Unarchive returns the candidate to the searchable pool
func (c *Candidate) Unarchive() error {
	if !c.IsArchived() {
		return ErrCandidateNotArchived()
	}
	c.Status = CandidateStatusActive
	c.UpdatedAt = time.Now()
	return nil
}

// HasSkill checks a skill case-insensitively
func (c *Candidate) HasSkill(skill string) bool {
	want := strings.ToLower(strings.TrimSpace(skill))
	for _, s := range c.Skills {
		if strings.ToLower(s) == want {
			return true
		}
	}
	return false
}

// Normalize fills derivable fields and canonicalizes enum spellings.
// Imported records often carry only a job history; the level and year
// totals fall out of it.
func (c *Candidate) Normalize(at time.Time) {
	c.WorkPreference = ParseWorkPreference(string(c.WorkPreference))
	c.ExperienceLevel = normalizeLevel(c.ExperienceLevel)

	if c.TotalYears == 0 && len(c.JobHistory) > 0 {
		c.TotalYears = c.DeriveTotalYears(at)
	}
	if c.ExperienceLevel == "" {
		c.ExperienceLevel = DeriveExperienceLevel(c.TotalYears)
	}
	if c.Status == "" {
		c.Status = CandidateStatusActive
	}

	for i, s := range c.Skills {
		c.Skills[i] = strings.TrimSpace(s)
	}
}

// DeriveTotalYears sums the parseable job history durations. Entries with
// unreadable dates contribute nothing.
func (c *Candidate) DeriveTotalYears(at time.Time) int {
	totalMonths := 0
	for _, entry := range c.JobHistory {
		if months, ok := entry.DurationMonths(at); ok {
			totalMonths += months
		}
	}
	return totalMonths / 12
}

// DeriveExperienceLevel buckets total years into a level. The brackets
// match the ones the match reasoning uses.
func DeriveExperienceLevel(totalYears int) ExperienceLevel {
	switch {
	case totalYears < 3:
		return ExperienceLevelJunior
	case totalYears < 7:
		return ExperienceLevelMid
	default:
		return ExperienceLevelSenior
	}
}

// ParseWorkPreference canonicalizes work preference spellings. Unknown
// values come back empty.
func ParseWorkPreference(raw string) WorkPreference {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "remote", "wfh":
		return WorkPreferenceRemote
	case "hybrid":
		return WorkPreferenceHybrid
	case "on-site", "onsite", "in-office", "office":
		return WorkPreferenceOnSite
	case "flexible", "flex":
		return WorkPreferenceFlexible
	case "any":
		return WorkPreferenceAny
	default:
		return ""
	}
}

func normalizeLevel(level ExperienceLevel) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "junior", "jr", "entry":
		return ExperienceLevelJunior
	case "mid", "intermediate", "mid-level":
		return ExperienceLevelMid
	case "senior", "sr", "lead", "principal", "staff":
		return ExperienceLevelSenior
	case "any":
		return ExperienceLevelAny
	default:
		return ""
	}
}
