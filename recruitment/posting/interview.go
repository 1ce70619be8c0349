package posting

import (
	"fmt"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// InterviewStatus represents the progress of one interview
type InterviewStatus string

const (
	InterviewStatusUnmatched InterviewStatus = "UNMATCHED" // No interviewer yet
	InterviewStatusPending   InterviewStatus = "PENDING"   // Interviewer assigned
	InterviewStatusPass      InterviewStatus = "PASS"
	InterviewStatusFail      InterviewStatus = "FAIL"
)

// Interview is one application's encounter with an interviewer for one round.
// The application and interviewer handles are non-owning and are not
// serialized; Relink restores them after a snapshot load.
type Interview struct {
	ApplicationID  kernel.ApplicationID `json:"application_id"`
	ApplicantID    kernel.UserID        `json:"applicant_id"`
	PostingID      kernel.PostingID     `json:"posting_id"`
	Round          string               `json:"round"`
	Status         InterviewStatus      `json:"status"`
	InterviewerID  kernel.UserID        `json:"interviewer_id,omitempty"`
	Recommendation string               `json:"recommendation,omitempty"`

	application *Application
	interviewer Interviewer
}

func newInterview(app *Application, round string) *Interview {
	return &Interview{
		ApplicationID: app.ID,
		ApplicantID:   app.ApplicantID,
		PostingID:     app.PostingID,
		Round:         round,
		Status:        InterviewStatusUnmatched,
		application:   app,
	}
}

// Ref identifies the interview in an interviewer's workload.
func (iv *Interview) Ref() kernel.InterviewRef {
	return kernel.InterviewRef{
		PostingID:   iv.PostingID,
		ApplicantID: iv.ApplicantID,
		Round:       iv.Round,
	}
}

func (iv *Interview) IsConcluded() bool {
	return iv.Status == InterviewStatusPass || iv.Status == InterviewStatusFail
}

// Application returns the owning application, if linked.
func (iv *Interview) Application() *Application {
	return iv.application
}

// Match assigns an interviewer to an UNMATCHED interview and tells them about
// it. round must name the round the interview belongs to. The interviewer's
// workload is the first thing written, so a refused assignment leaves the
// interview untouched.
func (iv *Interview) Match(interviewer Interviewer, round string, notifier Notifier) error {
	if iv.Status != InterviewStatusUnmatched {
		return ErrWrongInterviewStatus(InterviewStatusUnmatched, iv.Status)
	}
	if iv.Round != "" && iv.Round != round {
		return ErrInterviewNotFound().
			WithDetail("round", round).
			WithDetail("interview_round", iv.Round)
	}

	ref := iv.Ref()
	ref.Round = round
	if err := interviewer.AssignInterview(ref); err != nil {
		return err
	}

	iv.Round = round
	iv.interviewer = interviewer
	iv.InterviewerID = interviewer.UserID()
	iv.Status = InterviewStatusPending
	if iv.application != nil {
		iv.application.RecordInterview(round, iv)
	}
	if notifier != nil {
		notifier.ReceiveMessage(iv.InterviewerID, NewInterviewMessage(ref))
	}
	return nil
}

// SetStatus writes the status unconditionally and propagates it to the
// application. A concluded interview leaves the interviewer's workload.
func (iv *Interview) SetStatus(status InterviewStatus) {
	iv.Status = status
	if iv.application != nil {
		iv.application.OnInterviewUpdate(iv)
	}
	if iv.IsConcluded() && iv.interviewer != nil {
		iv.interviewer.ReleaseInterview(iv.Ref())
	}
}

// Conclude records the interviewer's verdict on a PENDING interview.
func (iv *Interview) Conclude(result InterviewStatus) error {
	if result != InterviewStatusPass && result != InterviewStatusFail {
		return ErrInvalidInterviewResult().WithDetail("status", result)
	}
	if iv.Status != InterviewStatusPending {
		return ErrWrongInterviewStatus(InterviewStatusPending, iv.Status)
	}
	iv.SetStatus(result)
	return nil
}

// Cancel fails an open interview. Concluded interviews are left alone.
func (iv *Interview) Cancel() {
	switch iv.Status {
	case InterviewStatusUnmatched, InterviewStatusPending:
		iv.SetStatus(InterviewStatusFail)
	}
}

func (iv *Interview) SetRecommendation(text string) {
	iv.Recommendation = text
}

// NewInterviewMessage is sent to an interviewer when they are matched.
func NewInterviewMessage(ref kernel.InterviewRef) string {
	return fmt.Sprintf("You got a new interview! Posting %s, round %s, applicant %s.",
		ref.PostingID, ref.Round, ref.ApplicantID)
}
