package posting

import (
	"errors"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/company"
	"github.com/stretchr/testify/require"
)

var (
	closeDay = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	openDay  = closeDay.AddDate(0, 0, -5)
)

type fakeBoard struct {
	postings  map[kernel.PostingID]*JobPosting
	companies map[kernel.CompanyID]*company.Company
}

func (b *fakeBoard) Posting(id kernel.PostingID) (*JobPosting, bool) {
	p, ok := b.postings[id]
	return p, ok
}

func (b *fakeBoard) Company(id kernel.CompanyID) (*company.Company, bool) {
	c, ok := b.companies[id]
	return c, ok
}

type fakeInterviewer struct {
	id       kernel.UserID
	assigned []kernel.InterviewRef
	refuse   error
}

func (f *fakeInterviewer) UserID() kernel.UserID { return f.id }

func (f *fakeInterviewer) AssignInterview(ref kernel.InterviewRef) error {
	if f.refuse != nil {
		return f.refuse
	}
	f.assigned = append(f.assigned, ref)
	return nil
}

func (f *fakeInterviewer) ReleaseInterview(ref kernel.InterviewRef) {
	f.assigned = slices.DeleteFunc(f.assigned, func(r kernel.InterviewRef) bool { return r == ref })
}

type fakeDirectory map[kernel.UserID]*fakeInterviewer

func (d fakeDirectory) Interviewer(id kernel.UserID) (Interviewer, bool) {
	i, ok := d[id]
	if !ok {
		return nil, false
	}
	return i, true
}

type fakeInbox map[kernel.UserID][]string

func (f fakeInbox) ReceiveMessage(userID kernel.UserID, text string) {
	f[userID] = append(f[userID], text)
}

func newBoard(t *testing.T, positions int) (*fakeBoard, *JobPosting) {
	t.Helper()
	p, err := NewJobPosting("p1", map[string]string{
		DetailPositionName:   "Backend Engineer",
		DetailNumOfPositions: strconv.Itoa(positions),
		DetailCloseDate:      kernel.FormatDate(closeDay),
		DetailCompanyID:      "acme",
	}, "rita", openDay)
	require.NoError(t, err)

	return &fakeBoard{
		postings:  map[kernel.PostingID]*JobPosting{p.ID: p},
		companies: map[kernel.CompanyID]*company.Company{"acme": company.NewCompany("acme", "boss", openDay)},
	}, p
}

func submit(t *testing.T, b *fakeBoard, p *JobPosting, applicant kernel.UserID) *Application {
	t.Helper()
	app := NewApplication(applicant, p.ID, openDay)
	require.NoError(t, app.Submit(b, b))
	return app
}

// processing returns a posting past its close date with the given applicants.
func processing(t *testing.T, positions int, applicants ...kernel.UserID) (*fakeBoard, *JobPosting, []*Application) {
	t.Helper()
	b, p := newBoard(t, positions)
	apps := make([]*Application, 0, len(applicants))
	for _, a := range applicants {
		apps = append(apps, submit(t, b, p, a))
	}
	require.True(t, p.MaybeClose(closeDay.AddDate(0, 0, 1)))
	return b, p, apps
}

var errRefused = errors.New("refused")
