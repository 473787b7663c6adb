package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Talent Sourcing
// ============================================================================

const (
	// Candidate scopes
	ScopeCandidatesAll    = "candidates:*"
	ScopeCandidatesRead   = "candidates:read"
	ScopeCandidatesWrite  = "candidates:write"
	ScopeCandidatesDelete = "candidates:delete"
	ScopeCandidatesImport = "candidates:import" // Resume and snapshot ingestion

	// Search scopes
	ScopeSearchAll     = "search:*"
	ScopeSearchRun     = "search:run"     // Run progressive searches
	ScopeSearchManage  = "search:manage"  // Reset conversations, read summaries
	ScopeSearchCompany = "search:company" // Set company profiles for fit scoring

	// Recruiter account scopes
	ScopeRecruitersRead  = "recruiters:read"
	ScopeRecruitersWrite = "recruiters:write"
)

// ScopeCategories organizes scopes for documentation and admin UIs
var ScopeCategories = map[string][]string{
	"Candidates": {
		ScopeCandidatesAll,
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
		ScopeCandidatesDelete,
		ScopeCandidatesImport,
	},
	"Search": {
		ScopeSearchAll,
		ScopeSearchRun,
		ScopeSearchManage,
		ScopeSearchCompany,
	},
	"Recruiters": {
		ScopeRecruitersRead,
		ScopeRecruitersWrite,
	},
}

// ScopeDescriptions provides descriptions for scopes
var ScopeDescriptions = map[string]string{
	// Candidates
	ScopeCandidatesAll:    "Full access to candidate management",
	ScopeCandidatesRead:   "View candidates",
	ScopeCandidatesWrite:  "Create and edit candidates",
	ScopeCandidatesDelete: "Delete candidates",
	ScopeCandidatesImport: "Import candidates from resumes and snapshots",

	// Search
	ScopeSearchAll:     "Full access to progressive search",
	ScopeSearchRun:     "Run progressive candidate searches",
	ScopeSearchManage:  "Reset conversations and read summaries",
	ScopeSearchCompany: "Set company profiles for mutual-fit scoring",

	// Recruiters
	ScopeRecruitersRead:  "View recruiter accounts",
	ScopeRecruitersWrite: "Create and edit recruiter accounts",
}

// ScopeGroups defines role groupings
var ScopeGroups = map[string][]string{
	"recruiter": {
		ScopeCandidatesRead,
		ScopeSearchAll,
	},
	"senior_recruiter": {
		ScopeCandidatesAll,
		ScopeSearchAll,
	},
	"sourcing_admin": {
		ScopeCandidatesAll,
		ScopeSearchAll,
		ScopeRecruitersRead,
		ScopeRecruitersWrite,
	},
	"viewer": {
		ScopeCandidatesRead,
		ScopeSearchRun,
	},
}
