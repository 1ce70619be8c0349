package kernel

import "strings"

type PostingID string

func NewPostingID(id string) PostingID { return PostingID(id) }
func (p PostingID) String() string     { return string(p) }
func (p PostingID) IsEmpty() bool      { return string(p) == "" }

// ApplicationID is derived from the (posting, applicant) pair, which is the
// identity of an application.
type ApplicationID string

const applicationIDSep = "--"

func NewApplicationID(posting PostingID, applicant UserID) ApplicationID {
	return ApplicationID(string(posting) + applicationIDSep + string(applicant))
}
func (a ApplicationID) String() string { return string(a) }
func (a ApplicationID) IsEmpty() bool  { return string(a) == "" }

// Parts splits the id back into its posting and applicant.
func (a ApplicationID) Parts() (PostingID, UserID, bool) {
	posting, applicant, ok := strings.Cut(string(a), applicationIDSep)
	if !ok {
		return "", "", false
	}
	return PostingID(posting), UserID(applicant), true
}

// InterviewRef points at one interview: the application's round.
type InterviewRef struct {
	PostingID   PostingID `json:"posting_id"`
	ApplicantID UserID    `json:"applicant_id"`
	Round       string    `json:"round"`
}

func (r InterviewRef) ApplicationID() ApplicationID {
	return NewApplicationID(r.PostingID, r.ApplicantID)
}
