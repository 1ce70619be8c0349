package boardsrv

import (
	"context"
	"strings"

	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/company"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
)

// Register signs up a user. A hiring manager founds their company; other
// employees join an existing one.
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	if !req.Type.IsValid() {
		return nil, user.ErrInvalidUserType().WithDetail("type", req.Type)
	}
	if req.Password == "" {
		return nil, user.ErrPasswordRequired()
	}
	email := kernel.Email(strings.TrimSpace(req.Email.String()))
	if !email.IsValid() {
		return nil, user.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	var created *user.User
	err = s.mutate(ctx, func(*inbox.Outbox) error {
		if _, exists := s.board.User(req.Username); exists {
			return user.ErrUserAlreadyExists().WithDetail("username", req.Username.String())
		}

		now := s.clock.Now()
		if req.Type == user.UserTypeApplicant {
			created = user.NewApplicant(req.Username, email, req.FirstName, req.LastName, hash, now)
			s.board.AddUser(created)
			return nil
		}

		c, exists := s.board.Company(req.CompanyID)
		switch {
		case req.Type == user.UserTypeHiringManager && exists:
			return company.ErrCompanyAlreadyExists().WithDetail("company_id", req.CompanyID.String())
		case req.Type != user.UserTypeHiringManager && !exists:
			return company.ErrCompanyDoesNotExist().WithDetail("company_id", req.CompanyID.String())
		}

		u, err := user.NewEmployee(req.Username, req.Type, req.CompanyID, email, req.FirstName, req.LastName, hash, now)
		if err != nil {
			return err
		}

		switch req.Type {
		case user.UserTypeHiringManager:
			s.board.AddCompany(company.NewCompany(req.CompanyID, u.ID, now))
		case user.UserTypeRecruiter:
			c.AddRecruiter(u.ID)
		case user.UserTypeInterviewer:
			c.AddInterviewer(u.ID)
		}
		s.board.AddUser(u)
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	logx.Infof("User registered: %s (%s)", created.ID, created.Type)
	return created, nil
}

// Login checks credentials, issues an access token and runs the daily tick.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	var resp *user.LoginResponse
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		u, ok := s.board.User(req.Username)
		if !ok || !s.hasher.Verify(u.PasswordHash, req.Password) {
			return user.ErrInvalidCredentials()
		}

		token, err := s.tokens.GenerateAccessToken(u.ID, string(u.Type), u.CompanyID)
		if err != nil {
			return err
		}

		s.tick(ctx)
		resp = &user.LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.tokens.AccessTokenTTL().Seconds()),
			User:        u.ToResponse(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) Me(ctx context.Context, actor kernel.UserID) (*user.UserResponse, error) {
	var resp user.UserResponse
	err := s.read(func() error {
		u, err := s.userByID(actor)
		if err != nil {
			return err
		}
		resp = u.ToResponse()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Messages drains the caller's unread messages.
func (s *Service) Messages(ctx context.Context, actor kernel.UserID) (*board.MessagesResponse, error) {
	if err := s.read(func() error {
		_, err := s.userByID(actor)
		return err
	}); err != nil {
		return nil, err
	}

	msgs, err := s.inbox.Drain(ctx, actor)
	if err != nil {
		return nil, internal(err, "failed to read messages")
	}
	return &board.MessagesResponse{Messages: msgs}, nil
}
