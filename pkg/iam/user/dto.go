package user

import (
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// RegisterRequest represents a sign-up for any user type. Employees other
// than hiring managers join an existing company; a hiring manager creates it.
type RegisterRequest struct {
	Username  kernel.UserID    `json:"username" validate:"required,min=3,max=64"`
	Password  string           `json:"password" validate:"required"`
	Email     kernel.Email     `json:"email" validate:"required,email"`
	FirstName kernel.FirstName `json:"first_name" validate:"required"`
	LastName  kernel.LastName  `json:"last_name" validate:"required"`
	Type      UserType         `json:"type" validate:"required,oneof=APPLICANT INTERVIEWER RECRUITER HIRING_MANAGER"`
	CompanyID kernel.CompanyID `json:"company_id,omitempty" validate:"required_unless=Type APPLICANT"`
}

type LoginRequest struct {
	Username kernel.UserID `json:"username" validate:"required"`
	Password string        `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        kernel.UserID    `json:"id"`
	Type      UserType         `json:"type"`
	Email     kernel.Email     `json:"email"`
	FirstName kernel.FirstName `json:"first_name"`
	LastName  kernel.LastName  `json:"last_name"`
	CompanyID kernel.CompanyID `json:"company_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Type:      u.Type,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
	}
}
