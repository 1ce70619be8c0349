package boardsrv

import (
	"context"

	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
	"github.com/google/uuid"
)

// CreatePosting opens a posting for the actor's company.
func (s *Service) CreatePosting(ctx context.Context, actor kernel.UserID, req posting.CreatePostingRequest) (*posting.PostingResponse, error) {
	var resp posting.PostingResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		u, err := s.userByID(actor)
		if err != nil {
			return err
		}
		companyID, err := u.Employer()
		if err != nil {
			return err
		}
		if !u.ManagesPostings() {
			return user.ErrWrongEmployeeType().
				WithDetail("user_id", actor.String()).
				WithDetail("actual", u.Type)
		}
		c, ok := s.board.Company(companyID)
		if !ok {
			return posting.ErrInsufficientPermissions().WithDetail("company_id", companyID.String())
		}

		p, err := posting.NewJobPosting(
			kernel.NewPostingID(uuid.NewString()),
			req.ToDetails(companyID),
			actor,
			s.clock.Now(),
		)
		if err != nil {
			return err
		}

		if err := u.AssignPosting(p.ID); err != nil {
			return err
		}
		c.AddPosting(p.ID)
		s.board.AddPosting(p)
		resp = posting.NewPostingResponse(p)

		logx.Infof("Posting %s created by %s for %s", p.ID, actor, companyID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) GetPosting(ctx context.Context, id kernel.PostingID) (*posting.PostingResponse, error) {
	var resp posting.PostingResponse
	err := s.read(func() error {
		p, err := s.postingByID(id)
		if err != nil {
			return err
		}
		resp = posting.NewPostingResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPostings returns matching postings in creation order.
func (s *Service) ListPostings(ctx context.Context, filter posting.PostingFilter, opts kernel.PaginationOptions) (*posting.PaginatedPostingsResponse, error) {
	var items []posting.PostingResponse
	_ = s.read(func() error {
		for _, p := range s.board.Postings {
			if filter.Matches(p) {
				items = append(items, posting.NewPostingResponse(p))
			}
		}
		return nil
	})
	return kernel.Paginate(items, opts), nil
}

// ListPostingApplications shows the submitted applications of a posting to
// its company's staff.
func (s *Service) ListPostingApplications(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, filter posting.ApplicationFilter) ([]posting.ApplicationResponse, error) {
	var out []posting.ApplicationResponse
	err := s.read(func() error {
		p, err := s.postingByID(postingID)
		if err != nil {
			return err
		}
		if _, err := s.staff(actor, p, false); err != nil {
			return err
		}

		out = make([]posting.ApplicationResponse, 0, len(p.Applications))
		for _, a := range p.Applications {
			if filter.Matches(a) {
				out = append(out, posting.NewApplicationResponse(a))
			}
		}
		return nil
	})
	return out, err
}

// ClosePosting finishes a PROCESSING posting, rejecting everyone still pending.
func (s *Service) ClosePosting(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (*posting.PostingResponse, error) {
	var resp posting.PostingResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		p, err := s.postingByID(postingID)
		if err != nil {
			return err
		}
		if _, err := s.staff(actor, p, true); err != nil {
			return err
		}
		if err := p.Close(); err != nil {
			return err
		}
		resp = posting.NewPostingResponse(p)
		logx.Infof("Posting %s finished by %s", p.ID, actor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// NotifyRejected messages every rejected applicant of the posting.
func (s *Service) NotifyRejected(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (int, error) {
	sent := 0
	err := s.mutate(ctx, func(out *inbox.Outbox) error {
		p, err := s.postingByID(postingID)
		if err != nil {
			return err
		}
		if _, err := s.staff(actor, p, true); err != nil {
			return err
		}
		sent = p.NotifyRejected(out)
		return nil
	})
	return sent, err
}

// ============================================================================
// Rounds
// ============================================================================

func (s *Service) AddRound(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, req posting.AddRoundRequest) (*posting.PostingResponse, error) {
	var resp posting.PostingResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		p, m, err := s.managedManager(actor, postingID)
		if err != nil {
			return err
		}
		if err := m.AddRound(posting.NewInterviewRound(req.Name)); err != nil {
			return err
		}
		resp = posting.NewPostingResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdvanceRound starts the next round with the remaining applications.
func (s *Service) AdvanceRound(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (*posting.PostingResponse, error) {
	var resp posting.PostingResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		p, m, err := s.managedManager(actor, postingID)
		if err != nil {
			return err
		}
		round, err := m.Advance()
		if err != nil {
			return err
		}
		logx.Infof("Posting %s started round %q with %d applications", p.ID, round.Name, len(round.Applications))
		resp = posting.NewPostingResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Hire marks an applicant of the posting HIRED.
func (s *Service) Hire(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, applicant kernel.UserID) (*posting.ApplicationResponse, error) {
	var resp posting.ApplicationResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		_, m, err := s.managedManager(actor, postingID)
		if err != nil {
			return err
		}
		app, err := s.applicationOf(postingID, applicant)
		if err != nil {
			return err
		}
		if err := m.Hire(app); err != nil {
			return err
		}
		logx.Infof("Applicant %s hired for posting %s", applicant, postingID)
		resp = posting.NewApplicationResponse(app)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
