package user

import (
	"fmt"
	"slices"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/document"
)

// UserType is the role variant of a user
type UserType string

const (
	UserTypeApplicant     UserType = "APPLICANT"
	UserTypeInterviewer   UserType = "INTERVIEWER"
	UserTypeRecruiter     UserType = "RECRUITER"
	UserTypeHiringManager UserType = "HIRING_MANAGER"
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeApplicant, UserTypeInterviewer, UserTypeRecruiter, UserTypeHiringManager:
		return true
	}
	return false
}

// IsEmployee reports whether the type works for a company.
func (t UserType) IsEmployee() bool {
	return t.IsValid() && t != UserTypeApplicant
}

// User is an applicant or an employee. Each role only carries the collection
// it works with: applicants a document store, interviewers their interview
// assignments, recruiters and hiring managers their postings.
type User struct {
	ID                   kernel.UserID         `json:"id"`
	Type                 UserType              `json:"type"`
	Email                kernel.Email          `json:"email"`
	FirstName            kernel.FirstName      `json:"first_name"`
	LastName             kernel.LastName       `json:"last_name"`
	PasswordHash         string                `json:"password_hash"`
	CompanyID            kernel.CompanyID      `json:"company_id,omitempty"`
	Documents            *document.Store       `json:"documents,omitempty"`
	InterviewAssignments []kernel.InterviewRef `json:"interview_assignments,omitempty"`
	PostingAssignments   []kernel.PostingID    `json:"posting_assignments,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
}

// NewApplicant creates an applicant with an always-editable document store.
func NewApplicant(id kernel.UserID, email kernel.Email, first kernel.FirstName, last kernel.LastName, passwordHash string, now time.Time) *User {
	return &User{
		ID:           id,
		Type:         UserTypeApplicant,
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: passwordHash,
		Documents:    document.NewStore(true),
		CreatedAt:    now,
	}
}

// NewEmployee creates a company employee of the given type.
func NewEmployee(id kernel.UserID, typ UserType, companyID kernel.CompanyID, email kernel.Email, first kernel.FirstName, last kernel.LastName, passwordHash string, now time.Time) (*User, error) {
	if !typ.IsEmployee() {
		return nil, ErrInvalidUserType().WithDetail("type", typ)
	}
	u := &User{
		ID:           id,
		Type:         typ,
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: passwordHash,
		CompanyID:    companyID,
		CreatedAt:    now,
	}
	switch typ {
	case UserTypeInterviewer:
		u.InterviewAssignments = []kernel.InterviewRef{}
	default:
		u.PostingAssignments = []kernel.PostingID{}
	}
	return u, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

func (u *User) UserID() kernel.UserID { return u.ID }

func (u *User) IsApplicant() bool   { return u.Type == UserTypeApplicant }
func (u *User) IsEmployee() bool    { return u.Type.IsEmployee() }
func (u *User) IsInterviewer() bool { return u.Type == UserTypeInterviewer }

// ManagesPostings reports whether the user can open and run postings.
func (u *User) ManagesPostings() bool {
	return u.Type == UserTypeRecruiter || u.Type == UserTypeHiringManager
}

func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Employer returns the company of an employee.
func (u *User) Employer() (kernel.CompanyID, error) {
	if !u.IsEmployee() {
		return "", ErrNotEmployee().WithDetail("user_id", u.ID.String())
	}
	return u.CompanyID, nil
}

// DocumentStore returns an applicant's personal documents.
func (u *User) DocumentStore() (*document.Store, error) {
	if !u.IsApplicant() {
		return nil, ErrNotApplicant().WithDetail("user_id", u.ID.String())
	}
	if u.Documents == nil {
		u.Documents = document.NewStore(true)
	}
	return u.Documents, nil
}

// AssignInterview adds an interview to an interviewer's workload.
func (u *User) AssignInterview(ref kernel.InterviewRef) error {
	if !u.IsInterviewer() {
		return u.wrongType(UserTypeInterviewer)
	}
	if !slices.Contains(u.InterviewAssignments, ref) {
		u.InterviewAssignments = append(u.InterviewAssignments, ref)
	}
	return nil
}

// ReleaseInterview removes an interview from the workload, if present.
func (u *User) ReleaseInterview(ref kernel.InterviewRef) {
	u.InterviewAssignments = slices.DeleteFunc(u.InterviewAssignments, func(r kernel.InterviewRef) bool {
		return r == ref
	})
}

// Interviews lists an interviewer's open assignments.
func (u *User) Interviews() ([]kernel.InterviewRef, error) {
	if !u.IsInterviewer() {
		return nil, u.wrongType(UserTypeInterviewer)
	}
	return slices.Clone(u.InterviewAssignments), nil
}

// AssignPosting records a posting a recruiter or hiring manager runs.
func (u *User) AssignPosting(id kernel.PostingID) error {
	if !u.ManagesPostings() {
		return u.wrongType(UserTypeRecruiter)
	}
	if !slices.Contains(u.PostingAssignments, id) {
		u.PostingAssignments = append(u.PostingAssignments, id)
	}
	return nil
}

// Postings lists the postings a recruiter or hiring manager runs.
func (u *User) Postings() ([]kernel.PostingID, error) {
	if !u.ManagesPostings() {
		return nil, u.wrongType(UserTypeRecruiter)
	}
	return slices.Clone(u.PostingAssignments), nil
}

func (u *User) wrongType(expected UserType) error {
	if !u.IsEmployee() {
		return ErrNotEmployee().WithDetail("user_id", u.ID.String())
	}
	return ErrWrongEmployeeType().
		WithDetail("user_id", u.ID.String()).
		WithDetail("expected", expected).
		WithDetail("actual", u.Type)
}
