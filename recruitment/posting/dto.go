package posting

import (
	"maps"
	"strconv"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/document"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreatePostingRequest represents the request to open a job posting
type CreatePostingRequest struct {
	PositionName   string            `json:"position_name" validate:"required"`
	NumOfPositions int               `json:"num_of_positions" validate:"required,gt=0"`
	CloseDate      string            `json:"close_date" validate:"required,datetime=2006-01-02"`
	Details        map[string]string `json:"details,omitempty"`
}

// ToDetails merges the typed fields into the free-form detail map.
func (r CreatePostingRequest) ToDetails(companyID kernel.CompanyID) map[string]string {
	d := make(map[string]string, len(r.Details)+4)
	for k, v := range r.Details {
		d[k] = v
	}
	d[DetailPositionName] = r.PositionName
	d[DetailNumOfPositions] = strconv.Itoa(r.NumOfPositions)
	d[DetailCloseDate] = r.CloseDate
	d[DetailCompanyID] = companyID.String()
	return d
}

type AddRoundRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type MatchInterviewRequest struct {
	InterviewerID kernel.UserID `json:"interviewer_id" validate:"required"`
}

// UpdateInterviewRequest records a verdict, a recommendation, or both
type UpdateInterviewRequest struct {
	Status         *InterviewStatus `json:"status,omitempty" validate:"omitempty,oneof=PASS FAIL"`
	Recommendation *string          `json:"recommendation,omitempty" validate:"omitempty,max=5000"`
}

type CreateApplicationRequest struct {
	PostingID kernel.PostingID `json:"posting_id" validate:"required"`
}

type CopyDocumentRequest struct {
	Name string `json:"name" validate:"required"`
}

// ============================================================================
// Filters
// ============================================================================

// PostingFilter matches postings on exact values; empty fields match all.
type PostingFilter struct {
	Status    Status
	CompanyID kernel.CompanyID
	Position  string
}

func (f PostingFilter) Matches(p *JobPosting) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if !f.CompanyID.IsEmpty() && p.CompanyID() != f.CompanyID {
		return false
	}
	if f.Position != "" && p.PositionName() != f.Position {
		return false
	}
	return true
}

type ApplicationFilter struct {
	Status      ApplicationStatus
	ApplicantID kernel.UserID
}

func (f ApplicationFilter) Matches(a *Application) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if !f.ApplicantID.IsEmpty() && a.ApplicantID != f.ApplicantID {
		return false
	}
	return true
}

type InterviewFilter struct {
	Status InterviewStatus
	Round  string
}

func (f InterviewFilter) Matches(iv *Interview) bool {
	if f.Status != "" && iv.Status != f.Status {
		return false
	}
	if f.Round != "" && iv.Round != f.Round {
		return false
	}
	return true
}

// ============================================================================
// Response DTOs
// ============================================================================

type RoundResponse struct {
	Name         string          `json:"name"`
	Status       RoundStatus     `json:"status"`
	ApplicantIDs []kernel.UserID `json:"applicant_ids"`
}

type PostingResponse struct {
	ID             kernel.PostingID  `json:"id"`
	Status         Status            `json:"status"`
	PositionName   string            `json:"position_name"`
	CompanyID      kernel.CompanyID  `json:"company_id"`
	NumOfPositions int               `json:"num_of_positions"`
	Details        map[string]string `json:"details"`
	Applicants     int               `json:"applicants"`
	Hired          int               `json:"hired"`
	CurrentRound   string            `json:"current_round,omitempty"`
	Rounds         []RoundResponse   `json:"rounds,omitempty"`
	CreatedBy      kernel.UserID     `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
}

type PaginatedPostingsResponse = kernel.Paginated[PostingResponse]

func NewPostingResponse(p *JobPosting) PostingResponse {
	resp := PostingResponse{
		ID:             p.ID,
		Status:         p.Status,
		PositionName:   p.PositionName(),
		CompanyID:      p.CompanyID(),
		NumOfPositions: p.NumOfPositions(),
		Details:        maps.Clone(p.Details),
		Applicants:     len(p.Applications),
		CreatedBy:      p.CreatedBy,
		CreatedAt:      p.CreatedAt,
	}
	if p.Manager == nil {
		return resp
	}

	resp.Hired = p.Manager.HiredCount()
	if cur := p.Manager.CurrentRound(); cur != nil {
		resp.CurrentRound = cur.Name
	}
	for _, r := range p.Manager.Rounds {
		ids := make([]kernel.UserID, 0, len(r.Applications))
		for _, a := range r.Applications {
			ids = append(ids, a.ApplicantID)
		}
		resp.Rounds = append(resp.Rounds, RoundResponse{Name: r.Name, Status: r.Status, ApplicantIDs: ids})
	}
	return resp
}

type InterviewResponse struct {
	PostingID      kernel.PostingID `json:"posting_id"`
	ApplicantID    kernel.UserID    `json:"applicant_id"`
	Round          string           `json:"round"`
	Status         InterviewStatus  `json:"status"`
	InterviewerID  kernel.UserID    `json:"interviewer_id,omitempty"`
	Recommendation string           `json:"recommendation,omitempty"`
}

func NewInterviewResponse(iv *Interview) InterviewResponse {
	return InterviewResponse{
		PostingID:      iv.PostingID,
		ApplicantID:    iv.ApplicantID,
		Round:          iv.Round,
		Status:         iv.Status,
		InterviewerID:  iv.InterviewerID,
		Recommendation: iv.Recommendation,
	}
}

type ApplicationResponse struct {
	ID          kernel.ApplicationID `json:"id"`
	PostingID   kernel.PostingID     `json:"posting_id"`
	ApplicantID kernel.UserID        `json:"applicant_id"`
	Status      ApplicationStatus    `json:"status"`
	Editable    bool                 `json:"documents_editable"`
	Documents   []*document.Document `json:"documents"`
	Interviews  []InterviewResponse  `json:"interviews"`
	CreatedAt   time.Time            `json:"created_at"`
}

func NewApplicationResponse(a *Application) ApplicationResponse {
	interviews := make([]InterviewResponse, 0, len(a.Interviews))
	for _, iv := range a.interviewsWhere(func(*Interview) bool { return true }) {
		interviews = append(interviews, NewInterviewResponse(iv))
	}
	return ApplicationResponse{
		ID:          a.ID,
		PostingID:   a.PostingID,
		ApplicantID: a.ApplicantID,
		Status:      a.Status,
		Editable:    a.Documents.IsEditable(),
		Documents:   a.Documents.Copies(),
		Interviews:  interviews,
		CreatedAt:   a.CreatedAt,
	}
}
