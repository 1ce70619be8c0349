package board

import (
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/document"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInterviewerLookup(t *testing.T) {
	b := New()
	ivan, err := user.NewEmployee("ivan", user.UserTypeInterviewer, "acme", "ivan@acme.io", "Ivan", "I", "h", day)
	require.NoError(t, err)
	rita, err := user.NewEmployee("rita", user.UserTypeRecruiter, "acme", "rita@acme.io", "Rita", "R", "h", day)
	require.NoError(t, err)
	b.AddUser(ivan)
	b.AddUser(rita)

	i, ok := b.Interviewer("ivan")
	require.True(t, ok)
	assert.Equal(t, kernel.UserID("ivan"), i.UserID())

	_, ok = b.Interviewer("rita")
	assert.False(t, ok)
	_, ok = b.Interviewer("nobody")
	assert.False(t, ok)
}

func TestApplicationsOfOrdering(t *testing.T) {
	b := New()
	b.AddApplication(posting.NewApplication("alice", "p2", day.Add(time.Hour)))
	b.AddApplication(posting.NewApplication("alice", "p3", day))
	b.AddApplication(posting.NewApplication("alice", "p1", day))
	b.AddApplication(posting.NewApplication("bob", "p1", day))

	apps := b.ApplicationsOf("alice")
	require.Len(t, apps, 3)
	assert.Equal(t, kernel.PostingID("p1"), apps[0].PostingID)
	assert.Equal(t, kernel.PostingID("p3"), apps[1].PostingID)
	assert.Equal(t, kernel.PostingID("p2"), apps[2].PostingID)

	b.RemoveApplication(apps[0].ID)
	assert.Len(t, b.ApplicationsOf("alice"), 2)
	_, ok := b.Application("p1", "alice")
	assert.False(t, ok)
}

func TestBlobInUse(t *testing.T) {
	b := New()
	alice := user.NewApplicant("alice", "alice@mail.io", "Alice", "A", "h", day)
	b.AddUser(alice)
	app := posting.NewApplication("alice", "p1", day)
	b.AddApplication(app)

	doc := document.NewDocument("cv.pdf", "documents/alice/1.pdf", "application/pdf", 10, day)
	require.NoError(t, alice.Documents.Add(doc))
	require.NoError(t, app.Documents.Add(doc.Copy()))

	assert.Len(t, b.DocumentStores(), 2)
	assert.True(t, b.BlobInUse("documents/alice/1.pdf"))

	alice.Documents.Remove("cv.pdf")
	assert.True(t, b.BlobInUse("documents/alice/1.pdf"), "the copy still points at the blob")

	app.Documents.Remove("cv.pdf")
	assert.False(t, b.BlobInUse("documents/alice/1.pdf"))
}

func TestDocumentStoresSkipsEmployees(t *testing.T) {
	b := New()
	hm, err := user.NewEmployee("hannah", user.UserTypeHiringManager, "acme", "h@acme.io", "Hannah", "M", "h", day)
	require.NoError(t, err)
	b.AddUser(hm)
	b.AddUser(user.NewApplicant("alice", "alice@mail.io", "Alice", "A", "h", day))

	assert.Len(t, b.DocumentStores(), 1)
}
