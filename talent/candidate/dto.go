package candidate

import (
	"time"

	"github.com/talentwire/scout/pkg/kernel"
)

// CreateCandidateRequest - DTO for creating a new candidate
type CreateCandidateRequest struct {
	Name              string            `json:"name" validate:"required"`
	Email             string            `json:"email" validate:"required,email"`
	Phone             string            `json:"phone,omitempty"`
	Skills            []string          `json:"skills,omitempty"`
	TotalYears        int               `json:"total_years,omitempty"`
	ExperienceLevel   string            `json:"experience_level,omitempty"`
	WorkPreference    string            `json:"work_preference,omitempty"`
	Location          string            `json:"location,omitempty"`
	Bio               string            `json:"bio,omitempty"`
	HourlyRate        *float64          `json:"hourly_rate,omitempty"`
	SalaryExpectation *float64          `json:"salary_expectation,omitempty"`
	JobHistory        []JobHistoryEntry `json:"job_history,omitempty"`
	Questionnaire     *Questionnaire    `json:"questionnaire,omitempty"`
}

// UpdateCandidateRequest - DTO for updating an existing candidate
type UpdateCandidateRequest struct {
	Name              *string           `json:"name,omitempty"`
	Phone             *string           `json:"phone,omitempty"`
	Skills            []string          `json:"skills,omitempty"`
	TotalYears        *int              `json:"total_years,omitempty"`
	ExperienceLevel   *string           `json:"experience_level,omitempty"`
	WorkPreference    *string           `json:"work_preference,omitempty"`
	Location          *string           `json:"location,omitempty"`
	Bio               *string           `json:"bio,omitempty"`
	HourlyRate        *float64          `json:"hourly_rate,omitempty"`
	SalaryExpectation *float64          `json:"salary_expectation,omitempty"`
	JobHistory        []JobHistoryEntry `json:"job_history,omitempty"`
	Questionnaire     *Questionnaire    `json:"questionnaire,omitempty"`
}

// ImportSnapshotRequest - Request to import a candidate batch from a bucket file
type ImportSnapshotRequest struct {
	Key string `json:"key" validate:"required"`
}

// SnapshotImportResponse - Outcome of a bulk snapshot import
type SnapshotImportResponse struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// CandidateResponse - DTO for returning candidate data
type CandidateResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone,omitempty"`
	Skills            []string          `json:"skills"`
	TotalYears        int               `json:"total_years"`
	ExperienceLevel   ExperienceLevel   `json:"experience_level"`
	WorkPreference    WorkPreference    `json:"work_preference"`
	Location          string            `json:"location,omitempty"`
	Bio               string            `json:"bio,omitempty"`
	HourlyRate        *float64          `json:"hourly_rate,omitempty"`
	SalaryExpectation *float64          `json:"salary_expectation,omitempty"`
	JobHistory        []JobHistoryEntry `json:"job_history,omitempty"`
	Questionnaire     *Questionnaire    `json:"questionnaire,omitempty"`
	ResumeURL         string            `json:"resume_url,omitempty"`
	Status            CandidateStatus   `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// SimilarCandidate - Nearby candidate by stored profile vector
type SimilarCandidate struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Skills          []string        `json:"skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Location        string          `json:"location,omitempty"`
	Similarity      float64         `json:"similarity"`
}

// Response type alias for paginated candidates
type PaginatedCandidatesResponse = kernel.Paginated[CandidateResponse]

// ToCandidateResponse converts a domain entity to a response DTO
func ToCandidateResponse(c *Candidate) CandidateResponse {
	return CandidateResponse{
		ID:                c.ID.String(),
		Name:              c.Name,
		Email:             c.Email.String(),
		Phone:             c.Phone.String(),
		Skills:            c.Skills,
		TotalYears:        c.TotalYears,
		ExperienceLevel:   c.ExperienceLevel,
		WorkPreference:    c.WorkPreference,
		Location:          c.Location,
		Bio:               c.Bio,
		HourlyRate:        c.HourlyRate,
		SalaryExpectation: c.SalaryExpectation,
		JobHistory:        c.JobHistory,
		Questionnaire:     c.Questionnaire,
		ResumeURL:         c.ResumeURL.String(),
		Status:            c.Status,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
