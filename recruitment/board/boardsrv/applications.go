package boardsrv

import (
	"context"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
)

// CreateApplication starts a DRAFT application. An applicant has at most one
// application per posting.
func (s *Service) CreateApplication(ctx context.Context, actor kernel.UserID, req posting.CreateApplicationRequest) (*posting.ApplicationResponse, error) {
	var resp posting.ApplicationResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		if _, err := s.applicant(actor); err != nil {
			return err
		}
		if _, err := s.postingByID(req.PostingID); err != nil {
			return err
		}
		if _, exists := s.board.Application(req.PostingID, actor); exists {
			return posting.ErrApplicationAlreadyExists().
				WithDetail("posting_id", req.PostingID.String()).
				WithDetail("applicant_id", actor.String())
		}

		app := posting.NewApplication(actor, req.PostingID, s.clock.Now())
		s.board.AddApplication(app)
		resp = posting.NewApplicationResponse(app)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMyApplications lists the actor's applications, drafts included.
func (s *Service) ListMyApplications(ctx context.Context, actor kernel.UserID, filter posting.ApplicationFilter) ([]posting.ApplicationResponse, error) {
	var out []posting.ApplicationResponse
	err := s.read(func() error {
		if _, err := s.applicant(actor); err != nil {
			return err
		}
		out = []posting.ApplicationResponse{}
		for _, a := range s.board.ApplicationsOf(actor) {
			if filter.Matches(a) {
				out = append(out, posting.NewApplicationResponse(a))
			}
		}
		return nil
	})
	return out, err
}

func (s *Service) GetMyApplication(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (*posting.ApplicationResponse, error) {
	var resp posting.ApplicationResponse
	err := s.read(func() error {
		app, err := s.applicationOf(postingID, actor)
		if err != nil {
			return err
		}
		resp = posting.NewApplicationResponse(app)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteApplication discards a draft and releases its document blobs.
func (s *Service) DeleteApplication(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) error {
	return s.mutate(ctx, func(*inbox.Outbox) error {
		app, err := s.applicationOf(postingID, actor)
		if err != nil {
			return err
		}
		if err := app.EnsureDeletable(); err != nil {
			return err
		}

		s.board.RemoveApplication(app.ID)
		s.releaseBlobs(ctx, app.Documents.List())
		return nil
	})
}

// SubmitApplication hands a draft to its posting and locks its documents.
func (s *Service) SubmitApplication(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (*posting.ApplicationResponse, error) {
	return s.transition(ctx, actor, postingID, "submitted", func(app *posting.Application) error {
		return app.Submit(s.board, s.board)
	})
}

// WithdrawApplication takes a pending application back to DRAFT.
func (s *Service) WithdrawApplication(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (*posting.ApplicationResponse, error) {
	return s.transition(ctx, actor, postingID, "withdrawn", func(app *posting.Application) error {
		return app.Withdraw(s.board, s.board)
	})
}

func (s *Service) transition(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, verb string, fn func(*posting.Application) error) (*posting.ApplicationResponse, error) {
	var resp posting.ApplicationResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		app, err := s.applicationOf(postingID, actor)
		if err != nil {
			return err
		}
		if err := fn(app); err != nil {
			return err
		}
		logx.Infof("Application %s %s", app.ID, verb)
		resp = posting.NewApplicationResponse(app)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
