package company

import (
	"slices"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// Company is the employer side of the board: its staff, its postings and an
// aggregate view of every application those postings received.
type Company struct {
	ID              kernel.CompanyID                         `json:"id"`
	HiringManagerID kernel.UserID                            `json:"hiring_manager_id"`
	RecruiterIDs    []kernel.UserID                          `json:"recruiter_ids"`
	InterviewerIDs  []kernel.UserID                          `json:"interviewer_ids"`
	PostingIDs      []kernel.PostingID                       `json:"posting_ids"`
	Applications    map[kernel.UserID][]kernel.ApplicationID `json:"applications"`
	CreatedAt       time.Time                                `json:"created_at"`
}

func NewCompany(id kernel.CompanyID, hiringManager kernel.UserID, now time.Time) *Company {
	return &Company{
		ID:              id,
		HiringManagerID: hiringManager,
		RecruiterIDs:    []kernel.UserID{},
		InterviewerIDs:  []kernel.UserID{},
		PostingIDs:      []kernel.PostingID{},
		Applications:    make(map[kernel.UserID][]kernel.ApplicationID),
		CreatedAt:       now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// ReceiveApplication records a submitted application under its applicant.
func (c *Company) ReceiveApplication(applicant kernel.UserID, app kernel.ApplicationID) {
	if c.Applications == nil {
		c.Applications = make(map[kernel.UserID][]kernel.ApplicationID)
	}
	if slices.Contains(c.Applications[applicant], app) {
		return
	}
	c.Applications[applicant] = append(c.Applications[applicant], app)
}

// CancelApplication forgets a withdrawn application.
func (c *Company) CancelApplication(applicant kernel.UserID, app kernel.ApplicationID) {
	apps := slices.DeleteFunc(c.Applications[applicant], func(id kernel.ApplicationID) bool {
		return id == app
	})
	if len(apps) == 0 {
		delete(c.Applications, applicant)
		return
	}
	c.Applications[applicant] = apps
}

// ApplicationsOf lists what one applicant has submitted to this company.
func (c *Company) ApplicationsOf(applicant kernel.UserID) []kernel.ApplicationID {
	return slices.Clone(c.Applications[applicant])
}

func (c *Company) AddRecruiter(id kernel.UserID) {
	if !slices.Contains(c.RecruiterIDs, id) {
		c.RecruiterIDs = append(c.RecruiterIDs, id)
	}
}

func (c *Company) AddInterviewer(id kernel.UserID) {
	if !slices.Contains(c.InterviewerIDs, id) {
		c.InterviewerIDs = append(c.InterviewerIDs, id)
	}
}

func (c *Company) AddPosting(id kernel.PostingID) {
	if !slices.Contains(c.PostingIDs, id) {
		c.PostingIDs = append(c.PostingIDs, id)
	}
}

func (c *Company) HasInterviewer(id kernel.UserID) bool {
	return slices.Contains(c.InterviewerIDs, id)
}

// Employs reports whether the user is on this company's staff.
func (c *Company) Employs(id kernel.UserID) bool {
	return c.HiringManagerID == id ||
		slices.Contains(c.RecruiterIDs, id) ||
		slices.Contains(c.InterviewerIDs, id)
}
