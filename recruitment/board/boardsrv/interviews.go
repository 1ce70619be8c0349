package boardsrv

import (
	"context"

	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
)

// currentInterview finds the applicant's interview in the current round.
func (s *Service) currentInterview(m *posting.RoundManager, postingID kernel.PostingID, applicant kernel.UserID) (*posting.InterviewRound, *posting.Interview, error) {
	round := m.CurrentRound()
	if round == nil {
		return nil, nil, posting.ErrInterviewNotFound().WithDetail("reason", "no round has started")
	}
	app, err := s.applicationOf(postingID, applicant)
	if err != nil {
		return nil, nil, err
	}
	iv, ok := app.Interview(round.Name)
	if !ok || !round.Contains(app) {
		return nil, nil, posting.ErrInterviewNotFound().
			WithDetail("round", round.Name).
			WithDetail("applicant_id", applicant.String())
	}
	return round, iv, nil
}

// MatchInterview assigns an interviewer of the posting's company to the
// applicant's interview in the current round.
func (s *Service) MatchInterview(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, applicant kernel.UserID, req posting.MatchInterviewRequest) (*posting.InterviewResponse, error) {
	var resp posting.InterviewResponse
	err := s.mutate(ctx, func(out *inbox.Outbox) error {
		p, m, err := s.managedManager(actor, postingID)
		if err != nil {
			return err
		}

		interviewer, ok := s.board.Interviewer(req.InterviewerID)
		if !ok {
			if _, exists := s.board.User(req.InterviewerID); exists {
				return user.ErrWrongEmployeeType().
					WithDetail("user_id", req.InterviewerID.String()).
					WithDetail("expected", user.UserTypeInterviewer)
			}
			return user.ErrUserNotFound().WithDetail("user_id", req.InterviewerID.String())
		}
		if c, ok := s.board.Company(p.CompanyID()); !ok || !c.HasInterviewer(req.InterviewerID) {
			return posting.ErrInsufficientPermissions().
				WithDetail("interviewer_id", req.InterviewerID.String()).
				WithDetail("company_id", p.CompanyID().String())
		}

		round, iv, err := s.currentInterview(m, postingID, applicant)
		if err != nil {
			return err
		}
		if err := iv.Match(interviewer, round.Name, out); err != nil {
			return err
		}

		logx.Infof("Interviewer %s matched to %s in round %q of %s", req.InterviewerID, applicant, round.Name, postingID)
		resp = posting.NewInterviewResponse(iv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateInterview lets the matched interviewer record a verdict and a
// recommendation on the current round's interview.
func (s *Service) UpdateInterview(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, applicant kernel.UserID, req posting.UpdateInterviewRequest) (*posting.InterviewResponse, error) {
	var resp posting.InterviewResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		p, err := s.postingByID(postingID)
		if err != nil {
			return err
		}
		if p.Manager == nil {
			return posting.ErrWrongPostingStatus(posting.StatusProcessing, p.Status)
		}

		_, iv, err := s.currentInterview(p.Manager, postingID, applicant)
		if err != nil {
			return err
		}
		if iv.InterviewerID != actor {
			return posting.ErrInsufficientPermissions().
				WithDetail("user_id", actor.String()).
				WithDetail("reason", "not the matched interviewer")
		}

		if req.Status != nil {
			if err := iv.Conclude(*req.Status); err != nil {
				return err
			}
		}
		if req.Recommendation != nil {
			iv.SetRecommendation(*req.Recommendation)
		}

		resp = posting.NewInterviewResponse(iv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyInterviews lists an interviewer's open assignments, or every interview
// of an applicant's applications.
func (s *Service) MyInterviews(ctx context.Context, actor kernel.UserID, filter posting.InterviewFilter) ([]posting.InterviewResponse, error) {
	var out []posting.InterviewResponse
	err := s.read(func() error {
		u, err := s.userByID(actor)
		if err != nil {
			return err
		}

		var interviews []*posting.Interview
		if u.IsApplicant() {
			for _, a := range s.board.ApplicationsOf(actor) {
				interviews = append(interviews, a.PastInterviews()...)
				interviews = append(interviews, a.OngoingInterviews()...)
			}
		} else {
			refs, err := u.Interviews()
			if err != nil {
				return err
			}
			for _, ref := range refs {
				if a, ok := s.board.Applications[ref.ApplicationID()]; ok {
					if iv, ok := a.Interview(ref.Round); ok {
						interviews = append(interviews, iv)
					}
				}
			}
		}

		out = make([]posting.InterviewResponse, 0, len(interviews))
		for _, iv := range interviews {
			if filter.Matches(iv) {
				out = append(out, posting.NewInterviewResponse(iv))
			}
		}
		return nil
	})
	return out, err
}
