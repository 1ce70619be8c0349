package boardsrv

import (
	"context"
	"sync"

	"github.com/Abraxas-365/hireflow/pkg/clockx"
	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
	"github.com/Abraxas-365/hireflow/pkg/iam/auth"
	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/document"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
)

// Service runs every board command. Commands are serialized by one mutex;
// after a command succeeds the board is refreshed, saved, and the messages
// it raised are delivered.
type Service struct {
	mu sync.Mutex

	board     *board.Board
	clock     clockx.Clock
	inbox     inbox.Inbox
	files     fsx.FileSystem
	snapshots board.SnapshotStore
	hasher    user.PasswordHasher
	tokens    auth.TokenService
}

// NewService creates the board service
func NewService(
	b *board.Board,
	clock clockx.Clock,
	in inbox.Inbox,
	files fsx.FileSystem,
	snapshots board.SnapshotStore,
	hasher user.PasswordHasher,
	tokens auth.TokenService,
) *Service {
	if b == nil {
		b = board.New()
	}
	return &Service{
		board:     b,
		clock:     clock,
		inbox:     in,
		files:     files,
		snapshots: snapshots,
		hasher:    hasher,
		tokens:    tokens,
	}
}

// Restore replaces the board with the latest snapshot, if any.
func (s *Service) Restore(ctx context.Context) error {
	b, err := s.snapshots.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b == nil {
		logx.Info("No board snapshot found, starting empty")
		return nil
	}
	s.board = b
	s.board.Refresh()
	logx.Infof("Board restored: %d users, %d postings, %d applications",
		len(b.Users), len(b.Postings), len(b.Applications))
	return nil
}

// mutate runs fn under the board lock. Messages raised by fn reach the inbox
// only if it succeeds.
func (s *Service) mutate(ctx context.Context, fn func(out *inbox.Outbox) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out inbox.Outbox
	if err := fn(&out); err != nil {
		return err
	}

	s.board.Refresh()
	s.persist(ctx)
	s.flush(ctx, &out)
	return nil
}

// read runs fn under the board lock without saving.
func (s *Service) read(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// persist saves the whole board. A failed save is logged and not returned:
// the next successful save carries the same state.
func (s *Service) persist(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.board); err != nil {
		logx.Errorf("Failed to save board snapshot: %v", err)
	}
}

func (s *Service) flush(ctx context.Context, out *inbox.Outbox) {
	for _, m := range out.Flush(ctx, s.inbox) {
		logx.Warnf("Failed to deliver message to %s", m.UserID)
	}
}

// releaseBlobs deletes the blobs of docs that no document references any more.
func (s *Service) releaseBlobs(ctx context.Context, docs []*document.Document) {
	for _, d := range docs {
		if d.StorageKey == "" || s.board.BlobInUse(d.StorageKey) {
			continue
		}
		if err := s.files.DeleteFile(ctx, d.StorageKey); err != nil {
			logx.Warnf("Failed to delete blob %s: %v", d.StorageKey, err)
		}
	}
}

// ============================================================================
// Lookups
// ============================================================================

func (s *Service) userByID(id kernel.UserID) (*user.User, error) {
	u, ok := s.board.User(id)
	if !ok {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return u, nil
}

func (s *Service) applicant(id kernel.UserID) (*user.User, error) {
	u, err := s.userByID(id)
	if err != nil {
		return nil, err
	}
	if !u.IsApplicant() {
		return nil, user.ErrNotApplicant().WithDetail("user_id", id.String())
	}
	return u, nil
}

func (s *Service) postingByID(id kernel.PostingID) (*posting.JobPosting, error) {
	p, ok := s.board.Posting(id)
	if !ok {
		return nil, posting.ErrPostingNotFound().WithDetail("posting_id", id.String())
	}
	return p, nil
}

func (s *Service) applicationOf(postingID kernel.PostingID, applicant kernel.UserID) (*posting.Application, error) {
	a, ok := s.board.Application(postingID, applicant)
	if !ok {
		return nil, posting.ErrApplicationNotFound().
			WithDetail("posting_id", postingID.String()).
			WithDetail("applicant_id", applicant.String())
	}
	return a, nil
}

// staff returns actor when they are an employee of the posting's company.
// managing additionally requires a recruiter or the hiring manager.
func (s *Service) staff(actor kernel.UserID, p *posting.JobPosting, managing bool) (*user.User, error) {
	u, err := s.userByID(actor)
	if err != nil {
		return nil, err
	}
	companyID, err := u.Employer()
	if err != nil {
		return nil, err
	}
	if companyID != p.CompanyID() || (managing && !u.ManagesPostings()) {
		return nil, posting.ErrInsufficientPermissions().
			WithDetail("user_id", actor.String()).
			WithDetail("posting_id", p.ID.String())
	}
	return u, nil
}

// managedManager returns the round manager of a posting actor runs.
func (s *Service) managedManager(actor kernel.UserID, postingID kernel.PostingID) (*posting.JobPosting, *posting.RoundManager, error) {
	p, err := s.postingByID(postingID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.staff(actor, p, true); err != nil {
		return nil, nil, err
	}
	if p.Manager == nil {
		return nil, nil, posting.ErrWrongPostingStatus(posting.StatusProcessing, p.Status)
	}
	return p, p.Manager, nil
}

func internal(err error, msg string) error {
	return errx.Wrap(err, msg, errx.TypeInternal)
}
