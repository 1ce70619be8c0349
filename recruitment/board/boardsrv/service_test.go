package boardsrv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/clockx"
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hireflow/pkg/iam/auth"
	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/company"
	"github.com/Abraxas-365/hireflow/recruitment/document"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(h, p string) bool       { return h == "hashed:"+p }

type countingSnapshots struct {
	saves int
	fail  error
}

func (c *countingSnapshots) Save(context.Context, *board.Board) error {
	c.saves++
	return c.fail
}

func (c *countingSnapshots) Load(context.Context) (*board.Board, error) { return nil, nil }

type harness struct {
	svc       *Service
	clock     *clockx.Simulated
	inbox     *inbox.MemoryInbox
	files     *fsxlocal.LocalFileSystem
	snapshots *countingSnapshots
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:     clockx.NewSimulated(startDay),
		inbox:     inbox.NewMemoryInbox(),
		files:     fsxlocal.NewLocalFileSystem(t.TempDir()),
		snapshots: &countingSnapshots{},
	}
	h.svc = NewService(nil, h.clock, h.inbox, h.files, h.snapshots, plainHasher{},
		auth.NewJWTService("test-secret", time.Hour, "test"))
	return h
}

func (h *harness) register(t *testing.T, name string, typ user.UserType, companyID kernel.CompanyID) {
	t.Helper()
	_, err := h.svc.Register(context.Background(), user.RegisterRequest{
		Username:  kernel.UserID(name),
		Password:  "pw",
		Email:     kernel.Email(name + "@example.com"),
		FirstName: kernel.FirstName(name),
		LastName:  "Test",
		Type:      typ,
		CompanyID: companyID,
	})
	require.NoError(t, err)
}

// staffed registers acme's staff and two applicants, and opens a posting
// closing on 2024-01-10.
func (h *harness) staffed(t *testing.T, positions int) kernel.PostingID {
	t.Helper()
	h.register(t, "hannah", user.UserTypeHiringManager, "acme")
	h.register(t, "rita", user.UserTypeRecruiter, "acme")
	h.register(t, "ivan", user.UserTypeInterviewer, "acme")
	h.register(t, "alice", user.UserTypeApplicant, "")
	h.register(t, "bob", user.UserTypeApplicant, "")

	p, err := h.svc.CreatePosting(context.Background(), "rita", posting.CreatePostingRequest{
		PositionName:   "Backend Engineer",
		NumOfPositions: positions,
		CloseDate:      "2024-01-10",
		Details:        map[string]string{posting.DetailCV: "required"},
	})
	require.NoError(t, err)
	return p.ID
}

func (h *harness) apply(t *testing.T, applicant kernel.UserID, postingID kernel.PostingID) {
	t.Helper()
	ctx := context.Background()
	_, err := h.svc.CreateApplication(ctx, applicant, posting.CreateApplicationRequest{PostingID: postingID})
	require.NoError(t, err)
	_, err = h.svc.SubmitApplication(ctx, applicant, postingID)
	require.NoError(t, err)
}

func assertCode(t *testing.T, err error, code errx.Code) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, code), "expected %s, got %v", code, err)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "hannah", user.UserTypeHiringManager, "acme")

	base := user.RegisterRequest{
		Password:  "pw",
		Email:     "x@example.com",
		FirstName: "X",
		LastName:  "Y",
	}

	tests := []struct {
		name string
		edit func(*user.RegisterRequest)
		code errx.Code
	}{
		{"duplicate username", func(r *user.RegisterRequest) {
			r.Username, r.Type = "hannah", user.UserTypeApplicant
		}, user.CodeUserAlreadyExists},
		{"empty password", func(r *user.RegisterRequest) {
			r.Username, r.Type, r.Password = "x", user.UserTypeApplicant, ""
		}, user.CodePasswordRequired},
		{"bad email", func(r *user.RegisterRequest) {
			r.Username, r.Type, r.Email = "x", user.UserTypeApplicant, "not-an-email"
		}, user.CodeInvalidEmail},
		{"second hiring manager", func(r *user.RegisterRequest) {
			r.Username, r.Type, r.CompanyID = "x", user.UserTypeHiringManager, "acme"
		}, company.CodeCompanyAlreadyExists},
		{"recruiter without company", func(r *user.RegisterRequest) {
			r.Username, r.Type, r.CompanyID = "x", user.UserTypeRecruiter, "globex"
		}, company.CodeCompanyDoesNotExist},
		{"unknown type", func(r *user.RegisterRequest) {
			r.Username, r.Type = "x", "CEO"
		}, user.CodeInvalidUserType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.edit(&req)
			_, err := h.svc.Register(ctx, req)
			assertCode(t, err, tt.code)
		})
	}

	h.register(t, "ivan", user.UserTypeInterviewer, "acme")
	c, ok := h.svc.board.Company("acme")
	require.True(t, ok)
	assert.Equal(t, kernel.UserID("hannah"), c.HiringManagerID)
	assert.True(t, c.HasInterviewer("ivan"))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "alice", user.UserTypeApplicant, "")

	_, err := h.svc.Login(ctx, user.LoginRequest{Username: "alice", Password: "nope"})
	assertCode(t, err, user.CodeInvalidCredentials)

	_, err = h.svc.Login(ctx, user.LoginRequest{Username: "nobody", Password: "pw"})
	assertCode(t, err, user.CodeInvalidCredentials)

	resp, err := h.svc.Login(ctx, user.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := auth.NewJWTService("test-secret", time.Hour, "test").ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, kernel.UserID("alice"), claims.UserID)
	assert.Equal(t, "APPLICANT", claims.UserType)
}

func TestLoginRunsTick(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)

	h.clock.Set(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))
	_, err := h.svc.Login(ctx, user.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	p, err := h.svc.GetPosting(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, posting.StatusProcessing, p.Status)
}

func TestRecruitmentWorkflow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)

	h.apply(t, "alice", id)
	h.apply(t, "bob", id)

	_, err := h.svc.CreateApplication(ctx, "alice", posting.CreateApplicationRequest{PostingID: id})
	assertCode(t, err, posting.CodeApplicationAlreadyExists)

	_, err = h.svc.AddRound(ctx, "rita", id, posting.AddRoundRequest{Name: "tech"})
	assertCode(t, err, posting.CodeWrongPostingStatus)

	// the close date itself is still open
	report, err := h.svc.AdvanceClock(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", report.Now)
	assert.Empty(t, report.ClosedPostings)

	report, err = h.svc.AdvanceClock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []kernel.PostingID{id}, report.ClosedPostings)

	_, err = h.svc.AddRound(ctx, "alice", id, posting.AddRoundRequest{Name: "tech"})
	assertCode(t, err, user.CodeNotEmployee)
	_, err = h.svc.AddRound(ctx, "ivan", id, posting.AddRoundRequest{Name: "tech"})
	assertCode(t, err, posting.CodeInsufficientPermissions)

	_, err = h.svc.AddRound(ctx, "rita", id, posting.AddRoundRequest{Name: "tech"})
	require.NoError(t, err)
	p, err := h.svc.AdvanceRound(ctx, "hannah", id)
	require.NoError(t, err)
	assert.Equal(t, "tech", p.CurrentRound)
	require.Len(t, p.Rounds, 1)
	assert.Equal(t, posting.RoundStatusMatching, p.Rounds[0].Status)

	_, err = h.svc.AdvanceRound(ctx, "rita", id)
	assertCode(t, err, posting.CodeWrongRoundStatus)

	for _, applicant := range []kernel.UserID{"alice", "bob"} {
		iv, err := h.svc.MatchInterview(ctx, "rita", id, applicant, posting.MatchInterviewRequest{InterviewerID: "ivan"})
		require.NoError(t, err)
		assert.Equal(t, posting.InterviewStatusPending, iv.Status)
	}
	_, err = h.svc.MatchInterview(ctx, "rita", id, "alice", posting.MatchInterviewRequest{InterviewerID: "ivan"})
	assertCode(t, err, posting.CodeWrongInterviewStatus)
	_, err = h.svc.MatchInterview(ctx, "rita", id, "alice", posting.MatchInterviewRequest{InterviewerID: "rita"})
	assertCode(t, err, user.CodeWrongEmployeeType)

	msgs, err := h.svc.Messages(ctx, "ivan")
	require.NoError(t, err)
	assert.Len(t, msgs.Messages, 2)
	assert.Contains(t, msgs.Messages[0], "You got a new interview!")

	mine, err := h.svc.MyInterviews(ctx, "ivan", posting.InterviewFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pass, fail := posting.InterviewStatusPass, posting.InterviewStatusFail
	note := "strong systems background"

	_, err = h.svc.UpdateInterview(ctx, "rita", id, "alice", posting.UpdateInterviewRequest{Status: &pass})
	assertCode(t, err, posting.CodeInsufficientPermissions)

	_, err = h.svc.Hire(ctx, "rita", id, "alice")
	assertCode(t, err, posting.CodeWrongRoundStatus)

	iv, err := h.svc.UpdateInterview(ctx, "ivan", id, "alice", posting.UpdateInterviewRequest{Status: &pass, Recommendation: &note})
	require.NoError(t, err)
	assert.Equal(t, note, iv.Recommendation)
	_, err = h.svc.UpdateInterview(ctx, "ivan", id, "bob", posting.UpdateInterviewRequest{Status: &fail})
	require.NoError(t, err)

	_, err = h.svc.UpdateInterview(ctx, "ivan", id, "bob", posting.UpdateInterviewRequest{Status: &pass})
	assertCode(t, err, posting.CodeWrongInterviewStatus)

	mine, err = h.svc.MyInterviews(ctx, "ivan", posting.InterviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine)

	hired, err := h.svc.Hire(ctx, "rita", id, "alice")
	require.NoError(t, err)
	assert.Equal(t, posting.ApplicationStatusHired, hired.Status)

	_, err = h.svc.Hire(ctx, "rita", id, "bob")
	assertCode(t, err, posting.CodeWrongApplicationStatus)

	closed, err := h.svc.ClosePosting(ctx, "hannah", id)
	require.NoError(t, err)
	assert.Equal(t, posting.StatusFinished, closed.Status)
	assert.Equal(t, 1, closed.Hired)

	sent, err := h.svc.NotifyRejected(ctx, "rita", id)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	msgs, err = h.svc.Messages(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sorry! You are rejected by a Job Posting: Backend Engineer"}, msgs.Messages)

	history, err := h.svc.MyInterviews(ctx, "alice", posting.InterviewFilter{Status: posting.InterviewStatusPass})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "tech", history[0].Round)

	_, err = h.svc.ClosePosting(ctx, "hannah", id)
	assertCode(t, err, posting.CodeWrongPostingStatus)
}

func TestWithdrawDuringInterviews(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)
	h.apply(t, "alice", id)

	_, err := h.svc.AdvanceClock(ctx, 10)
	require.NoError(t, err)
	_, err = h.svc.AddRound(ctx, "rita", id, posting.AddRoundRequest{Name: "tech"})
	require.NoError(t, err)
	_, err = h.svc.AdvanceRound(ctx, "rita", id)
	require.NoError(t, err)
	_, err = h.svc.MatchInterview(ctx, "rita", id, "alice", posting.MatchInterviewRequest{InterviewerID: "ivan"})
	require.NoError(t, err)

	app, err := h.svc.WithdrawApplication(ctx, "alice", id)
	require.NoError(t, err)
	assert.Equal(t, posting.ApplicationStatusDraft, app.Status)
	assert.True(t, app.Editable)
	require.Len(t, app.Interviews, 1)
	assert.Equal(t, posting.InterviewStatusFail, app.Interviews[0].Status)

	mine, err := h.svc.MyInterviews(ctx, "ivan", posting.InterviewFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine)

	// the posting no longer accepts applications
	_, err = h.svc.SubmitApplication(ctx, "alice", id)
	assertCode(t, err, posting.CodeWrongPostingStatus)

	require.NoError(t, h.svc.DeleteApplication(ctx, "alice", id))
	_, err = h.svc.GetMyApplication(ctx, "alice", id)
	assertCode(t, err, posting.CodeApplicationNotFound)
}

func TestDeleteApplicationRequiresDraft(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)
	h.apply(t, "alice", id)

	err := h.svc.DeleteApplication(ctx, "alice", id)
	assertCode(t, err, posting.CodeApplicationNotDeletable)
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)

	upload := func(postingID kernel.PostingID, name, body string) (*document.Document, error) {
		return h.svc.UploadDocument(ctx, "alice", postingID, board.UploadDocumentRequest{
			Name:        name,
			ContentType: "text/plain",
			Content:     strings.NewReader(body),
		})
	}

	cv, err := upload("", "cv.txt", "my cv")
	require.NoError(t, err)
	assert.Equal(t, int64(5), cv.Size)

	_, err = upload("", "cv.txt", "again")
	assertCode(t, err, document.CodeAlreadyExists)
	_, err = upload("", "  ", "x")
	assertCode(t, err, document.CodeEmptyName)

	_, err = h.svc.CreateApplication(ctx, "alice", posting.CreateApplicationRequest{PostingID: id})
	require.NoError(t, err)

	copied, err := h.svc.CopyDocument(ctx, "alice", id, "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, cv.StorageKey, copied.StorageKey)

	_, err = h.svc.CopyDocument(ctx, "alice", id, "cv.txt")
	assertCode(t, err, document.CodeAlreadyExists)
	_, err = h.svc.CopyDocument(ctx, "alice", id, "missing.txt")
	assertCode(t, err, document.CodeNotFound)

	// the application copy keeps the shared blob alive
	require.NoError(t, h.svc.RemoveDocument(ctx, "alice", "", "cv.txt"))
	_, data, err := h.svc.ReadDocument(ctx, "alice", id, "cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "my cv", string(data))

	_, err = h.svc.SubmitApplication(ctx, "alice", id)
	require.NoError(t, err)

	_, err = upload(id, "letter.txt", "hi")
	assertCode(t, err, document.CodeNotEditable)
	err = h.svc.RemoveDocument(ctx, "alice", id, "cv.txt")
	assertCode(t, err, document.CodeNotEditable)

	docs, err := h.svc.ListDocuments(ctx, "alice", id)
	require.NoError(t, err)
	assert.False(t, docs.Editable)
	assert.Len(t, docs.Documents, 1)

	_, err = h.svc.ListDocuments(ctx, "rita", "")
	assertCode(t, err, user.CodeNotApplicant)
}

func TestDocumentResponsesAreDetached(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)

	uploaded, err := h.svc.UploadDocument(ctx, "alice", "", board.UploadDocumentRequest{
		Name:    "cv.txt",
		Content: strings.NewReader("my cv"),
	})
	require.NoError(t, err)
	_, err = h.svc.CreateApplication(ctx, "alice", posting.CreateApplicationRequest{PostingID: id})
	require.NoError(t, err)

	t.Run("returned documents do not alias the board", func(t *testing.T) {
		uploaded.Name = "renamed.txt"

		copied, err := h.svc.CopyDocument(ctx, "alice", id, "cv.txt")
		require.NoError(t, err)
		copied.Name = "other.txt"

		own, err := h.svc.ListDocuments(ctx, "alice", "")
		require.NoError(t, err)
		require.Len(t, own.Documents, 1)
		own.Documents[0].Used = false
		own.Documents[0].Name = "listed.txt"

		own, err = h.svc.ListDocuments(ctx, "alice", "")
		require.NoError(t, err)
		assert.Equal(t, "cv.txt", own.Documents[0].Name)
		assert.True(t, own.Documents[0].Used)

		app, err := h.svc.GetMyApplication(ctx, "alice", id)
		require.NoError(t, err)
		require.Len(t, app.Documents, 1)
		assert.Equal(t, "cv.txt", app.Documents[0].Name)

		require.NoError(t, h.svc.RemoveDocument(ctx, "alice", id, "cv.txt"))
	})

	// run with -race: responses are encoded while other commands mutate the
	// same documents
	t.Run("encoding while commands run", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				docs, err := h.svc.ListDocuments(ctx, "alice", "")
				assert.NoError(t, err)
				_, err = json.Marshal(docs)
				assert.NoError(t, err)

				app, err := h.svc.GetMyApplication(ctx, "alice", id)
				assert.NoError(t, err)
				_, err = json.Marshal(app)
				assert.NoError(t, err)
			}
		}()

		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := h.svc.CopyDocument(ctx, "alice", id, "cv.txt")
				assert.NoError(t, err)
				_, err = h.svc.Tick(ctx)
				assert.NoError(t, err)
				assert.NoError(t, h.svc.RemoveDocument(ctx, "alice", id, "cv.txt"))
			}
		}()

		wg.Wait()
	})
}

func TestTickEvictsUnusedDocuments(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.register(t, "alice", user.UserTypeApplicant, "")

	doc, err := h.svc.UploadDocument(ctx, "alice", "", board.UploadDocumentRequest{
		Name:    "old.txt",
		Content: strings.NewReader("stale"),
	})
	require.NoError(t, err)

	report, err := h.svc.AdvanceClock(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, report.EvictedDocuments)

	report, err = h.svc.AdvanceClock(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, report.EvictedDocuments)

	ok, err := h.files.Exists(ctx, doc.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	docs, err := h.svc.ListDocuments(ctx, "alice", "")
	require.NoError(t, err)
	assert.Empty(t, docs.Documents)
}

func TestAdvanceClockValidation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.svc.AdvanceClock(ctx, 0)
	assertCode(t, err, board.CodeInvalidDays)

	wall := NewService(nil, clockx.System{}, h.inbox, h.files, h.snapshots, plainHasher{}, nil)
	_, err = wall.AdvanceClock(ctx, 1)
	assertCode(t, err, board.CodeClockNotSimulated)
	assert.False(t, wall.Clock().Simulated)
	assert.True(t, h.svc.Clock().Simulated)
}

func TestListPostings(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	h.staffed(t, 1)
	_, err := h.svc.CreatePosting(ctx, "hannah", posting.CreatePostingRequest{
		PositionName:   "Designer",
		NumOfPositions: 2,
		CloseDate:      "2024-02-01",
	})
	require.NoError(t, err)

	_, err = h.svc.CreatePosting(ctx, "ivan", posting.CreatePostingRequest{
		PositionName:   "Nope",
		NumOfPositions: 1,
		CloseDate:      "2024-02-01",
	})
	assertCode(t, err, user.CodeWrongEmployeeType)

	all, err := h.svc.ListPostings(ctx, posting.PostingFilter{}, kernel.PaginationOptions{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)
	require.Len(t, all.Items, 1)
	assert.Equal(t, "Backend Engineer", all.Items[0].PositionName)

	designers, err := h.svc.ListPostings(ctx, posting.PostingFilter{Position: "Designer"}, kernel.PaginationOptions{})
	require.NoError(t, err)
	require.Len(t, designers.Items, 1)
	assert.Equal(t, "2024-01-01", designers.Items[0].Details[posting.DetailPostDate])

	u, ok := h.svc.board.User("hannah")
	require.True(t, ok)
	assignments, err := u.Postings()
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestFailedCommandsDoNotSaveOrNotify(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	id := h.staffed(t, 1)
	saves := h.snapshots.saves

	_, err := h.svc.NotifyRejected(ctx, "alice", id)
	require.Error(t, err)
	assert.Equal(t, saves, h.snapshots.saves)

	h.snapshots.fail = errors.New("disk full")
	_, err = h.svc.Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, saves+1, h.snapshots.saves)
}
