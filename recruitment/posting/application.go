package posting

import (
	"slices"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/document"
)

// ApplicationStatus represents where a candidacy stands
type ApplicationStatus string

const (
	ApplicationStatusDraft    ApplicationStatus = "DRAFT"    // Being prepared by the applicant
	ApplicationStatusPending  ApplicationStatus = "PENDING"  // Submitted, waiting for a decision
	ApplicationStatusHired    ApplicationStatus = "HIRED"    // Terminal
	ApplicationStatusRejected ApplicationStatus = "REJECTED" // Terminal
)

// Application is one applicant's candidacy for one posting.
type Application struct {
	ID          kernel.ApplicationID  `json:"id"`
	ApplicantID kernel.UserID         `json:"applicant_id"`
	PostingID   kernel.PostingID      `json:"posting_id"`
	Status      ApplicationStatus     `json:"status"`
	Interviews  map[string]*Interview `json:"interviews"`
	Documents   *document.Store       `json:"documents"`
	CreatedAt   time.Time             `json:"created_at"`
}

// NewApplication creates a DRAFT application with an editable document store.
func NewApplication(applicant kernel.UserID, postingID kernel.PostingID, now time.Time) *Application {
	return &Application{
		ID:          kernel.NewApplicationID(postingID, applicant),
		ApplicantID: applicant,
		PostingID:   postingID,
		Status:      ApplicationStatusDraft,
		Interviews:  make(map[string]*Interview),
		Documents:   document.NewStore(true),
		CreatedAt:   now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

func (a *Application) IsDraft() bool   { return a.Status == ApplicationStatusDraft }
func (a *Application) IsPending() bool { return a.Status == ApplicationStatusPending }

// Submit hands the application to its posting and locks the documents.
func (a *Application) Submit(postings PostingLookup, companies CompanyDirectory) error {
	if a.Status != ApplicationStatusDraft {
		return ErrWrongApplicationStatus(ApplicationStatusDraft, a.Status)
	}

	p, ok := postings.Posting(a.PostingID)
	if !ok {
		return ErrPostingNotFound().WithDetail("posting_id", a.PostingID.String())
	}
	if err := p.SubmitApplication(a, companies); err != nil {
		return err
	}

	a.Documents.SetEditable(false)
	a.Status = ApplicationStatusPending
	return nil
}

// Withdraw takes a pending application back to DRAFT.
func (a *Application) Withdraw(postings PostingLookup, companies CompanyDirectory) error {
	if a.Status != ApplicationStatusPending {
		return ErrWrongApplicationStatus(ApplicationStatusPending, a.Status)
	}

	p, ok := postings.Posting(a.PostingID)
	if !ok {
		return ErrPostingNotFound().WithDetail("posting_id", a.PostingID.String())
	}
	if err := p.CancelApplication(a, companies); err != nil {
		return err
	}

	a.Documents.SetEditable(true)
	a.Status = ApplicationStatusDraft
	return nil
}

// OnInterviewUpdate rejects the application as soon as one interview fails.
func (a *Application) OnInterviewUpdate(iv *Interview) {
	if iv.Status == InterviewStatusFail {
		a.Status = ApplicationStatusRejected
	}
}

// RecordInterview stores iv under the round name, replacing any previous one.
func (a *Application) RecordInterview(round string, iv *Interview) {
	if a.Interviews == nil {
		a.Interviews = make(map[string]*Interview)
	}
	iv.application = a
	a.Interviews[round] = iv
}

func (a *Application) Interview(round string) (*Interview, bool) {
	iv, ok := a.Interviews[round]
	return iv, ok
}

// EnsureDeletable fails unless the application is still a draft.
func (a *Application) EnsureDeletable() error {
	if a.Status != ApplicationStatusDraft {
		return ErrApplicationNotDeletable().WithDetail("status", a.Status)
	}
	return nil
}

// PastInterviews returns the concluded interviews, ordered by round name.
func (a *Application) PastInterviews() []*Interview {
	return a.interviewsWhere(func(iv *Interview) bool { return iv.IsConcluded() })
}

// OngoingInterviews returns the interviews still waiting for a result.
func (a *Application) OngoingInterviews() []*Interview {
	return a.interviewsWhere(func(iv *Interview) bool { return !iv.IsConcluded() })
}

func (a *Application) interviewsWhere(keep func(*Interview) bool) []*Interview {
	rounds := make([]string, 0, len(a.Interviews))
	for r := range a.Interviews {
		rounds = append(rounds, r)
	}
	slices.Sort(rounds)

	out := make([]*Interview, 0, len(rounds))
	for _, r := range rounds {
		if iv := a.Interviews[r]; keep(iv) {
			out = append(out, iv)
		}
	}
	return out
}
