package posting

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/company"
)

// Status represents the lifecycle of a job posting
type Status string

const (
	StatusOpen       Status = "OPEN"       // Accepting applications
	StatusProcessing Status = "PROCESSING" // Closed to applicants, interviewing
	StatusFinished   Status = "FINISHED"   // Terminal
)

// Well-known detail keys. Any other key is kept as free-form information,
// typically a document requirement.
const (
	DetailPositionName   = "position_name"
	DetailNumOfPositions = "num_of_positions"
	DetailCloseDate      = "close_date"
	DetailPostDate       = "post_date"
	DetailCompanyID      = "company_id"
	DetailCV             = "cv"
	DetailCoverLetter    = "cover_letter"
	DetailReference      = "reference"
	DetailExtraDocument  = "extra_document"
)

// JobPosting is the aggregate root of the recruitment engine. It owns its
// applications and, once closed to applicants, its round manager.
type JobPosting struct {
	ID           kernel.PostingID  `json:"id"`
	Details      map[string]string `json:"details"`
	Status       Status            `json:"status"`
	Applications []*Application    `json:"-"`
	Manager      *RoundManager     `json:"manager,omitempty"`
	CreatedBy    kernel.UserID     `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewJobPosting validates details and creates an OPEN posting. A missing post
// date defaults to the creation day.
func NewJobPosting(id kernel.PostingID, details map[string]string, createdBy kernel.UserID, now time.Time) (*JobPosting, error) {
	d := make(map[string]string, len(details)+1)
	for k, v := range details {
		d[k] = strings.TrimSpace(v)
	}
	if d[DetailPostDate] == "" {
		d[DetailPostDate] = kernel.FormatDate(now)
	}
	if err := ValidateDetails(d); err != nil {
		return nil, err
	}

	return &JobPosting{
		ID:           id,
		Details:      d,
		Status:       StatusOpen,
		Applications: []*Application{},
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}, nil
}

// ValidateDetails checks the keys the engine depends on.
func ValidateDetails(d map[string]string) error {
	if d[DetailPositionName] == "" {
		return ErrInvalidDetails().WithDetail("field", DetailPositionName)
	}
	if d[DetailCompanyID] == "" {
		return ErrInvalidDetails().WithDetail("field", DetailCompanyID)
	}
	if n, err := strconv.Atoi(d[DetailNumOfPositions]); err != nil || n <= 0 {
		return ErrInvalidDetails().
			WithDetail("field", DetailNumOfPositions).
			WithDetail("reason", "must be a positive integer")
	}
	if _, err := kernel.ParseDate(d[DetailCloseDate]); err != nil {
		return ErrInvalidDetails().
			WithDetail("field", DetailCloseDate).
			WithDetail("reason", "must be a date in YYYY-MM-DD format")
	}
	return nil
}

// ============================================================================
// Detail accessors
// ============================================================================

func (p *JobPosting) PositionName() string {
	return p.Details[DetailPositionName]
}

func (p *JobPosting) CompanyID() kernel.CompanyID {
	return kernel.CompanyID(p.Details[DetailCompanyID])
}

// NumOfPositions returns the number of openings, 0 if the detail is broken.
func (p *JobPosting) NumOfPositions() int {
	n, err := strconv.Atoi(p.Details[DetailNumOfPositions])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CloseDate returns the parsed close date. An unparsable date means the
// posting never closes on its own.
func (p *JobPosting) CloseDate() (time.Time, bool) {
	t, err := kernel.ParseDate(p.Details[DetailCloseDate])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ============================================================================
// Domain Methods
// ============================================================================

func (p *JobPosting) IsOpen() bool       { return p.Status == StatusOpen }
func (p *JobPosting) IsProcessing() bool { return p.Status == StatusProcessing }
func (p *JobPosting) IsFinished() bool   { return p.Status == StatusFinished }

// MaybeClose moves an OPEN posting to PROCESSING once its close date is
// strictly before now, freezing the applicant pool into a round manager.
func (p *JobPosting) MaybeClose(now time.Time) bool {
	if p.Status != StatusOpen {
		return false
	}
	closeDate, ok := p.CloseDate()
	if !ok || !closeDate.Before(kernel.DateOf(now)) {
		return false
	}

	p.Status = StatusProcessing
	p.Manager = newRoundManager(p, p.Applications)
	return true
}

// SubmitApplication registers app with the posting and its company.
func (p *JobPosting) SubmitApplication(app *Application, companies CompanyDirectory) error {
	if p.HasApplicant(app.ApplicantID) {
		return ErrApplicationAlreadyExists().
			WithDetail("posting_id", p.ID.String()).
			WithDetail("applicant_id", app.ApplicantID.String())
	}
	if p.Status != StatusOpen {
		return ErrWrongPostingStatus(StatusOpen, p.Status)
	}
	c, ok := companies.Company(p.CompanyID())
	if !ok {
		return company.ErrCompanyDoesNotExist().WithDetail("company_id", p.CompanyID().String())
	}

	c.ReceiveApplication(app.ApplicantID, app.ID)
	p.Applications = append(p.Applications, app)
	return nil
}

// CancelApplication takes app out of the posting, its company and, when
// interviews are running, the round manager.
func (p *JobPosting) CancelApplication(app *Application, companies CompanyDirectory) error {
	idx := slices.Index(p.Applications, app)
	if idx < 0 {
		return ErrApplicationNotFound().WithDetail("application_id", app.ID.String())
	}
	c, ok := companies.Company(p.CompanyID())
	if !ok {
		return company.ErrCompanyDoesNotExist().WithDetail("company_id", p.CompanyID().String())
	}

	p.Applications = slices.Delete(p.Applications, idx, idx+1)
	c.CancelApplication(app.ApplicantID, app.ID)
	if p.Manager != nil {
		p.Manager.Cancel(app)
	}
	return nil
}

// Close finishes a PROCESSING posting and rejects whoever is still pending.
func (p *JobPosting) Close() error {
	if p.Status != StatusProcessing {
		return ErrWrongPostingStatus(StatusProcessing, p.Status)
	}
	p.Status = StatusFinished
	if p.Manager != nil {
		p.Manager.EndAll()
	}
	return nil
}

// NotifyRejected messages every rejected applicant.
func (p *JobPosting) NotifyRejected(notifier Notifier) int {
	sent := 0
	for _, app := range p.Applications {
		if app.Status == ApplicationStatusRejected {
			notifier.ReceiveMessage(app.ApplicantID, RejectionMessage(p.PositionName()))
			sent++
		}
	}
	return sent
}

// Refresh re-derives round status and the remaining pool.
func (p *JobPosting) Refresh() {
	if p.Manager != nil {
		p.Manager.RefreshStatus()
	}
}

func (p *JobPosting) HasApplicant(applicant kernel.UserID) bool {
	_, ok := p.ApplicationOf(applicant)
	return ok
}

func (p *JobPosting) ApplicationOf(applicant kernel.UserID) (*Application, bool) {
	for _, a := range p.Applications {
		if a.ApplicantID == applicant {
			return a, true
		}
	}
	return nil, false
}

// Relink restores the non-serialized back-references after a snapshot load:
// the manager's posting, and each interview's application and interviewer.
func (p *JobPosting) Relink(interviewers InterviewerDirectory) {
	if p.Manager != nil {
		p.Manager.posting = p
	}
	for _, app := range p.Applications {
		app.Relink(interviewers)
	}
}

// Relink restores the interview back-references of one application.
func (a *Application) Relink(interviewers InterviewerDirectory) {
	for round, iv := range a.Interviews {
		iv.application = a
		iv.Round = round
		if iv.InterviewerID.IsEmpty() || interviewers == nil {
			continue
		}
		if i, ok := interviewers.Interviewer(iv.InterviewerID); ok {
			iv.interviewer = i
		}
	}
}

// RestoreManager rebuilds a manager from persisted rounds and pool.
func RestoreManager(p *JobPosting, rounds []*InterviewRound, remaining []*Application) *RoundManager {
	return &RoundManager{
		Rounds:    rounds,
		Remaining: remaining,
		posting:   p,
	}
}

// RejectionMessage is sent to applicants by NotifyRejected.
func RejectionMessage(position string) string {
	return fmt.Sprintf("Sorry! You are rejected by a Job Posting: %s", position)
}
