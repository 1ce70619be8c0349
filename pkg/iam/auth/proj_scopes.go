package auth

import "slices"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - recruitment board
// ============================================================================

const (
	ScopeAll = "*"

	// Posting scopes
	ScopePostingsAll    = "postings:*"
	ScopePostingsRead   = "postings:read"
	ScopePostingsWrite  = "postings:write"
	ScopePostingsClose  = "postings:close"  // Finish a posting
	ScopePostingsNotify = "postings:notify" // Message rejected applicants

	// Application scopes
	ScopeApplicationsAll    = "applications:*"
	ScopeApplicationsRead   = "applications:read"
	ScopeApplicationsWrite  = "applications:write"  // Create, submit, withdraw own applications
	ScopeApplicationsReview = "applications:review" // See every application of a posting
	ScopeApplicationsHire   = "applications:hire"

	// Interview scopes
	ScopeInterviewsAll      = "interviews:*"
	ScopeInterviewsRead     = "interviews:read"
	ScopeInterviewsSchedule = "interviews:schedule" // Add/advance rounds, match interviewers
	ScopeInterviewsConduct  = "interviews:conduct"  // Record results and recommendations

	// Document scopes
	ScopeDocumentsAll   = "documents:*"
	ScopeDocumentsRead  = "documents:read"
	ScopeDocumentsWrite = "documents:write"

	// Clock scopes
	ScopeClockRead    = "clock:read"
	ScopeClockAdvance = "clock:advance"
)

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"Postings": {
		ScopePostingsAll,
		ScopePostingsRead,
		ScopePostingsWrite,
		ScopePostingsClose,
		ScopePostingsNotify,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsReview,
		ScopeApplicationsHire,
	},
	"Interviews": {
		ScopeInterviewsAll,
		ScopeInterviewsRead,
		ScopeInterviewsSchedule,
		ScopeInterviewsConduct,
	},
	"Documents": {
		ScopeDocumentsAll,
		ScopeDocumentsRead,
		ScopeDocumentsWrite,
	},
	"Clock": {
		ScopeClockRead,
		ScopeClockAdvance,
	},
}

// RoleScopes is what each user type may do. Keys match user.UserType values.
var RoleScopes = map[string][]string{
	"APPLICANT": {
		ScopePostingsRead,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeInterviewsRead,
		ScopeDocumentsAll,
		ScopeClockRead,
	},
	"INTERVIEWER": {
		ScopePostingsRead,
		ScopeInterviewsRead,
		ScopeInterviewsConduct,
		ScopeClockRead,
	},
	"RECRUITER": {
		ScopePostingsAll,
		ScopeApplicationsReview,
		ScopeApplicationsHire,
		ScopeInterviewsRead,
		ScopeInterviewsSchedule,
		ScopeClockRead,
		ScopeClockAdvance,
	},
	"HIRING_MANAGER": {
		ScopePostingsAll,
		ScopeApplicationsAll,
		ScopeInterviewsAll,
		ScopeClockRead,
		ScopeClockAdvance,
	},
}

// ScopesFor returns the scopes granted to a user type.
func ScopesFor(userType string) []string {
	return slices.Clone(RoleScopes[userType])
}

// Grants reports whether held covers required, honouring "*" and
// "<category>:*" wildcards.
func Grants(held []string, required string) bool {
	for _, s := range held {
		if s == ScopeAll || s == required {
			return true
		}
		if len(s) > 2 && s[len(s)-2:] == ":*" {
			prefix := s[:len(s)-1]
			if len(required) > len(prefix) && required[:len(prefix)] == prefix {
				return true
			}
		}
	}
	return false
}
