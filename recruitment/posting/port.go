package posting

import (
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/company"
)

// PostingLookup resolves postings by id. Unknown ids yield (nil, false).
type PostingLookup interface {
	Posting(id kernel.PostingID) (*JobPosting, bool)
}

// CompanyDirectory resolves the company that owns a posting.
type CompanyDirectory interface {
	Company(id kernel.CompanyID) (*company.Company, bool)
}

// Interviewer is the part of an employee an interview needs: somewhere to put
// and take back its assignment.
type Interviewer interface {
	UserID() kernel.UserID
	AssignInterview(ref kernel.InterviewRef) error
	ReleaseInterview(ref kernel.InterviewRef)
}

// InterviewerDirectory resolves interviewers by id. Unknown ids yield
// (nil, false).
type InterviewerDirectory interface {
	Interviewer(id kernel.UserID) (Interviewer, bool)
}

// Notifier receives best-effort messages for users.
type Notifier interface {
	ReceiveMessage(userID kernel.UserID, text string)
}
