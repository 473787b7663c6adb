package search

import (
	"github.com/talentwire/scout/talent/candidate"
	"github.com/talentwire/scout/talent/fit"
)

// FilterRequest - DTO for running one search turn
type FilterRequest struct {
	Query             string   `json:"query" validate:"required"`
	MinScore          *float64 `json:"min_score,omitempty"`
	ConversationID    string   `json:"conversation_id,omitempty"`
	ResetConversation bool     `json:"reset_conversation,omitempty"`
}

// MatchResult - one scored candidate in a filter response
type MatchResult struct {
	CandidateID        string                    `json:"candidate_id"`
	Name               string                    `json:"name"`
	Email              string                    `json:"email"`
	Phone              string                    `json:"phone,omitempty"`
	Score              float64                   `json:"score"`
	Skills             []string                  `json:"skills"`
	ExperienceYears    int                       `json:"experience_years"`
	ExperienceLevel    candidate.ExperienceLevel `json:"experience_level"`
	WorkPreference     candidate.WorkPreference  `json:"work_preference"`
	Location           string                    `json:"location,omitempty"`
	MatchedSkills      []string                  `json:"matched_skills"`
	TransferableSkills []TransferableSkill       `json:"transferable_skills"`
	MissingSkills      []string                  `json:"missing_skills"`
	Reasoning          string                    `json:"reasoning"`
	HourlyRate         *float64                  `json:"hourly_rate,omitempty"`
	SalaryExpectation  *float64                  `json:"salary_expectation,omitempty"`
	Bio                string                    `json:"bio,omitempty"`
	CultureFit         *float64                  `json:"culture_fit,omitempty"`
	MissionAlignment   *float64                  `json:"mission_alignment,omitempty"`
	OverallFit         *float64                  `json:"overall_fit,omitempty"`
}

// RankedResult - the outcome of one filter turn
type RankedResult struct {
	ConversationTurn     int           `json:"conversation_turn"`
	Query                string        `json:"current_query"`
	CombinedRequirements Requirements  `json:"combined_requirements"`
	TotalSearched        int           `json:"total_candidates_searched"`
	MatchesFound         int           `json:"matches_found"`
	Matches              []MatchResult `json:"matches"`
	RefinementSuggestion string        `json:"refinement_suggestion"`
}

// SessionSummary - the conversation state so far
type SessionSummary struct {
	Turns                int          `json:"turns"`
	Queries              []string     `json:"queries"`
	CombinedRequirements Requirements `json:"combined_requirements"`
	CandidatesRemaining  int          `json:"candidates_remaining"`
}

// SearchResponse - one filter turn plus the conversational reply
type SearchResponse struct {
	RankedResult
	ConversationID string        `json:"conversation_id"`
	MainResponse   string        `json:"main_response"`
	Profiles       []MatchResult `json:"profiles"`
}

// CompanyProfileRequest - sets the company side of fit scoring for a
// conversation. Profile fields sit at the top level of the body.
type CompanyProfileRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	fit.CompanyProfile
}

// CompanyProfileResponse - confirmation that a profile was stored
type CompanyProfileResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// ResetRequest - clears one conversation's filters
type ResetRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
}

// ResetResponse - confirmation that a conversation was reset
type ResetResponse struct {
	Status              string `json:"status"`
	Message             string `json:"message"`
	CandidatesAvailable int    `json:"candidates_available"`
	ConversationID      string `json:"conversation_id"`
}

// SummaryResponse - session summary scoped to a conversation
type SummaryResponse struct {
	ConversationID string `json:"conversation_id"`
	SessionSummary
}

// TenureResponse - tenure analysis for one candidate
type TenureResponse struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	TenureAnalysis
}
