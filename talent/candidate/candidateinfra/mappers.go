package candidateinfra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/talentwire/scout/pkg/kernel"
	"github.com/talentwire/scout/talent/candidate"
)

// candidateRow represents a row from the candidates table
type candidateRow struct {
	ID                string          `db:"id"`
	Name              string          `db:"name"`
	Email             string          `db:"email"`
	Phone             sql.NullString  `db:"phone"`
	Skills            pq.StringArray  `db:"skills"`
	TotalYears        int             `db:"total_years"`
	ExperienceLevel   string          `db:"experience_level"`
	WorkPreference    string          `db:"work_preference"`
	Location          sql.NullString  `db:"location"`
	Bio               sql.NullString  `db:"bio"`
	HourlyRate        sql.NullFloat64 `db:"hourly_rate"`
	SalaryExpectation sql.NullFloat64 `db:"salary_expectation"`
	JobHistory        []byte          `db:"job_history"`
	Questionnaire     []byte          `db:"questionnaire"`
	ResumeURL         sql.NullString  `db:"resume_url"`
	Status            string          `db:"status"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// ToDomain converts a candidateRow to a candidate.Candidate domain model
func (r *candidateRow) ToDomain() (*candidate.Candidate, error) {
	c := &candidate.Candidate{
		ID:              kernel.CandidateID(r.ID),
		Name:            r.Name,
		Email:           kernel.Email(r.Email),
		Skills:          []string(r.Skills),
		TotalYears:      r.TotalYears,
		ExperienceLevel: candidate.ExperienceLevel(r.ExperienceLevel),
		WorkPreference:  candidate.WorkPreference(r.WorkPreference),
		Status:          candidate.CandidateStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Phone.Valid {
		c.Phone = kernel.Phone(r.Phone.String)
	}
	if r.Location.Valid {
		c.Location = r.Location.String
	}
	if r.Bio.Valid {
		c.Bio = r.Bio.String
	}
	if r.HourlyRate.Valid {
		rate := r.HourlyRate.Float64
		c.HourlyRate = &rate
	}
	if r.SalaryExpectation.Valid {
		salary := r.SalaryExpectation.Float64
		c.SalaryExpectation = &salary
	}
	if r.ResumeURL.Valid {
		c.ResumeURL = kernel.BucketURL(r.ResumeURL.String)
	}

	if len(r.JobHistory) > 0 {
		if err := json.Unmarshal(r.JobHistory, &c.JobHistory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job_history: %w", err)
		}
	}

	if len(r.Questionnaire) > 0 {
		var q candidate.Questionnaire
		if err := json.Unmarshal(r.Questionnaire, &q); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questionnaire: %w", err)
		}
		if !q.IsEmpty() {
			c.Questionnaire = &q
		}
	}

	return c, nil
}

// marshalProfileColumns serializes the JSONB columns of a candidate
func marshalProfileColumns(c *candidate.Candidate) (jobHistory, questionnaire []byte, err error) {
	jobHistory, err = json.Marshal(c.JobHistory)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal job_history: %w", err)
	}

	if c.Questionnaire != nil {
		questionnaire, err = json.Marshal(c.Questionnaire)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal questionnaire: %w", err)
		}
	}

	return jobHistory, questionnaire, nil
}

// similarRow represents a row from the similarity query
type similarRow struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Skills          pq.StringArray `db:"skills"`
	ExperienceLevel string         `db:"experience_level"`
	Location        sql.NullString `db:"location"`
	Similarity      float64        `db:"similarity"`
}

// ToDTO converts a similarRow to the public DTO
func (r *similarRow) ToDTO() candidate.SimilarCandidate {
	s := candidate.SimilarCandidate{
		ID:              r.ID,
		Name:            r.Name,
		Skills:          []string(r.Skills),
		ExperienceLevel: candidate.ExperienceLevel(r.ExperienceLevel),
		Similarity:      r.Similarity,
	}
	if r.Location.Valid {
		s.Location = r.Location.String
	}
	return s
}
