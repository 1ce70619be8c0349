package board

import (
	"context"
	"slices"
	"strings"

	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/company"
	"github.com/Abraxas-365/hireflow/recruitment/document"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
)

// Board is the whole recruitment object graph: users, companies, postings in
// creation order and every application, drafts included. It is not safe for
// concurrent use; callers serialize access.
type Board struct {
	Users        map[kernel.UserID]*user.User
	Companies    map[kernel.CompanyID]*company.Company
	Postings     []*posting.JobPosting
	Applications map[kernel.ApplicationID]*posting.Application
}

var (
	_ posting.PostingLookup        = (*Board)(nil)
	_ posting.CompanyDirectory     = (*Board)(nil)
	_ posting.InterviewerDirectory = (*Board)(nil)
)

func New() *Board {
	return &Board{
		Users:        make(map[kernel.UserID]*user.User),
		Companies:    make(map[kernel.CompanyID]*company.Company),
		Postings:     []*posting.JobPosting{},
		Applications: make(map[kernel.ApplicationID]*posting.Application),
	}
}

// SnapshotStore persists whole boards. Load returns (nil, nil) when nothing
// has been saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, b *Board) error
	Load(ctx context.Context) (*Board, error)
}

// ============================================================================
// Lookups
// ============================================================================

func (b *Board) Posting(id kernel.PostingID) (*posting.JobPosting, bool) {
	for _, p := range b.Postings {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (b *Board) Company(id kernel.CompanyID) (*company.Company, bool) {
	c, ok := b.Companies[id]
	return c, ok
}

// Interviewer resolves users of type INTERVIEWER only.
func (b *Board) Interviewer(id kernel.UserID) (posting.Interviewer, bool) {
	u, ok := b.Users[id]
	if !ok || !u.IsInterviewer() {
		return nil, false
	}
	return u, true
}

func (b *Board) User(id kernel.UserID) (*user.User, bool) {
	u, ok := b.Users[id]
	return u, ok
}

func (b *Board) Application(postingID kernel.PostingID, applicant kernel.UserID) (*posting.Application, bool) {
	a, ok := b.Applications[kernel.NewApplicationID(postingID, applicant)]
	return a, ok
}

// ApplicationsOf lists an applicant's applications ordered by creation.
func (b *Board) ApplicationsOf(applicant kernel.UserID) []*posting.Application {
	var out []*posting.Application
	for _, a := range b.Applications {
		if a.ApplicantID == applicant {
			out = append(out, a)
		}
	}
	sortApplications(out)
	return out
}

// ============================================================================
// Mutations
// ============================================================================

func (b *Board) AddUser(u *user.User) {
	b.Users[u.ID] = u
}

func (b *Board) AddCompany(c *company.Company) {
	b.Companies[c.ID] = c
}

func (b *Board) AddPosting(p *posting.JobPosting) {
	b.Postings = append(b.Postings, p)
}

func (b *Board) AddApplication(a *posting.Application) {
	b.Applications[a.ID] = a
}

func (b *Board) RemoveApplication(id kernel.ApplicationID) {
	delete(b.Applications, id)
}

// ============================================================================
// Board-wide passes
// ============================================================================

// DocumentStores returns every store on the board: applicants' own stores
// first, then application stores.
func (b *Board) DocumentStores() []*document.Store {
	var stores []*document.Store
	for _, id := range sortedKeys(b.Users) {
		if u := b.Users[id]; u.IsApplicant() && u.Documents != nil {
			stores = append(stores, u.Documents)
		}
	}
	for _, id := range sortedKeys(b.Applications) {
		if a := b.Applications[id]; a.Documents != nil {
			stores = append(stores, a.Documents)
		}
	}
	return stores
}

// BlobInUse reports whether any document still points at key. Copies share
// their source's blob.
func (b *Board) BlobInUse(key string) bool {
	for _, s := range b.DocumentStores() {
		for _, d := range s.Documents {
			if d.StorageKey == key {
				return true
			}
		}
	}
	return false
}

// Refresh re-derives round status and remaining pools of every posting.
func (b *Board) Refresh() {
	for _, p := range b.Postings {
		p.Refresh()
	}
}

// Relink restores the non-serialized back-references after a load.
func (b *Board) Relink() {
	for _, p := range b.Postings {
		p.Relink(b)
	}
	for _, a := range b.Applications {
		a.Relink(b)
	}
}

func sortApplications(apps []*posting.Application) {
	slices.SortFunc(apps, func(x, y *posting.Application) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(x.ID.String(), y.ID.String())
	})
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
