package boardapi

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/Abraxas-365/hireflow/pkg/iam/auth"
	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/board/boardsrv"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MaxUploadSize caps a single document upload.
const MaxUploadSize = int64(10 * 1024 * 1024)

// Handlers provides HTTP handlers for the recruitment board
type Handlers struct {
	service  *boardsrv.Service
	validate *validator.Validate
}

// NewHandlers creates a new board handlers instance
func NewHandlers(service *boardsrv.Service) *Handlers {
	return &Handlers{
		service:  service,
		validate: validator.New(),
	}
}

// ============================================================================
// Auth
// ============================================================================

// Register creates a user account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	u, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(u.ToResponse())
}

// Login exchanges credentials for an access token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ============================================================================
// Me
// ============================================================================

// Me returns the authenticated user
// GET /api/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.Me(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Messages drains the caller's unread messages
// GET /api/me/messages
func (h *Handlers) Messages(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.Messages(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// MyInterviews lists the interviews the caller takes part in
// GET /api/me/interviews?status=&round=
func (h *Handlers) MyInterviews(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	filter := posting.InterviewFilter{
		Status: posting.InterviewStatus(c.Query("status")),
		Round:  c.Query("round"),
	}

	interviews, err := h.service.MyInterviews(c.Context(), authContext.UserID, filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"interviews": interviews})
}

// ============================================================================
// Postings
// ============================================================================

// CreatePosting opens a job posting for the caller's company
// POST /api/postings
func (h *Handlers) CreatePosting(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req posting.CreatePostingRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	resp, err := h.service.CreatePosting(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetPosting retrieves a posting by ID
// GET /api/postings/:id
func (h *Handlers) GetPosting(c *fiber.Ctx) error {
	resp, err := h.service.GetPosting(c.Context(), postingID(c, "id"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListPostings lists postings with optional filters
// GET /api/postings?status=&company_id=&position=&page=&page_size=
func (h *Handlers) ListPostings(c *fiber.Ctx) error {
	filter := posting.PostingFilter{
		Status:    posting.Status(c.Query("status")),
		CompanyID: kernel.CompanyID(c.Query("company_id")),
		Position:  c.Query("position"),
	}

	resp, err := h.service.ListPostings(c.Context(), filter, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListPostingApplications lists the submitted applications of a posting
// GET /api/postings/:id/applications?status=
func (h *Handlers) ListPostingApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	filter := posting.ApplicationFilter{Status: posting.ApplicationStatus(c.Query("status"))}
	apps, err := h.service.ListPostingApplications(c.Context(), authContext.UserID, postingID(c, "id"), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"applications": apps})
}

// ClosePosting finishes a posting and rejects whoever is still pending
// POST /api/postings/:id/close
func (h *Handlers) ClosePosting(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.ClosePosting(c.Context(), authContext.UserID, postingID(c, "id"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// NotifyRejected messages every rejected applicant of a posting
// POST /api/postings/:id/notify-rejected
func (h *Handlers) NotifyRejected(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	sent, err := h.service.NotifyRejected(c.Context(), authContext.UserID, postingID(c, "id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"notified": sent})
}

// AddRound appends an interview round
// POST /api/postings/:id/rounds
func (h *Handlers) AddRound(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req posting.AddRoundRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	resp, err := h.service.AddRound(c.Context(), authContext.UserID, postingID(c, "id"), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// AdvanceRound starts the next interview round
// POST /api/postings/:id/rounds/advance
func (h *Handlers) AdvanceRound(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.AdvanceRound(c.Context(), authContext.UserID, postingID(c, "id"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Hire hires an applicant who passed the current round
// POST /api/postings/:id/applications/:applicant/hire
func (h *Handlers) Hire(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.Hire(c.Context(), authContext.UserID, postingID(c, "id"), kernel.UserID(c.Params("applicant")))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// MatchInterview assigns an interviewer to an applicant's current interview
// POST /api/postings/:id/applications/:applicant/interview/match
func (h *Handlers) MatchInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req posting.MatchInterviewRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	resp, err := h.service.MatchInterview(c.Context(), authContext.UserID, postingID(c, "id"), kernel.UserID(c.Params("applicant")), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateInterview records a verdict and/or a recommendation
// PUT /api/postings/:id/applications/:applicant/interview
func (h *Handlers) UpdateInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req posting.UpdateInterviewRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	resp, err := h.service.UpdateInterview(c.Context(), authContext.UserID, postingID(c, "id"), kernel.UserID(c.Params("applicant")), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ============================================================================
// Applications
// ============================================================================

// CreateApplication starts a DRAFT application
// POST /api/applications
func (h *Handlers) CreateApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req posting.CreateApplicationRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	resp, err := h.service.CreateApplication(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMyApplications lists the caller's applications
// GET /api/applications?status=
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	filter := posting.ApplicationFilter{Status: posting.ApplicationStatus(c.Query("status"))}
	apps, err := h.service.ListMyApplications(c.Context(), authContext.UserID, filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"applications": apps})
}

// GetMyApplication retrieves the caller's application to a posting
// GET /api/applications/:postingId
func (h *Handlers) GetMyApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.GetMyApplication(c.Context(), authContext.UserID, postingID(c, "postingId"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// DeleteApplication deletes a DRAFT application
// DELETE /api/applications/:postingId
func (h *Handlers) DeleteApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.DeleteApplication(c.Context(), authContext.UserID, postingID(c, "postingId")); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// SubmitApplication submits a DRAFT application to its posting
// POST /api/applications/:postingId/submit
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.SubmitApplication(c.Context(), authContext.UserID, postingID(c, "postingId"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// WithdrawApplication takes a submitted application back to DRAFT
// POST /api/applications/:postingId/withdraw
func (h *Handlers) WithdrawApplication(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.WithdrawApplication(c.Context(), authContext.UserID, postingID(c, "postingId"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ============================================================================
// Documents
// ============================================================================
//
// The personal store is addressed without a posting id; application stores
// live under /api/applications/:postingId/documents.

// ListDocuments lists a document store
// GET /api/me/documents
// GET /api/applications/:postingId/documents
func (h *Handlers) ListDocuments(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	resp, err := h.service.ListDocuments(c.Context(), authContext.UserID, postingID(c, "postingId"))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UploadDocument stores a multipart "file" in a document store
// POST /api/me/documents
// POST /api/applications/:postingId/documents
func (h *Handlers) UploadDocument(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	file, err := c.FormFile("file")
	if err != nil {
		return board.ErrFileRequired().WithCause(err)
	}
	if file.Size > MaxUploadSize {
		return board.ErrFileTooLarge().
			WithDetail("max_size", MaxUploadSize).
			WithDetail("size", file.Size)
	}

	name := c.FormValue("name")
	if name == "" {
		name = file.Filename
	}

	uploaded, err := file.Open()
	if err != nil {
		return board.ErrFileRequired().WithCause(err)
	}
	defer uploaded.Close()

	doc, err := h.service.UploadDocument(c.Context(), authContext.UserID, postingID(c, "postingId"), board.UploadDocumentRequest{
		Name:        name,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Content:     uploaded,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// CopyDocument copies a personal document into an application
// POST /api/applications/:postingId/documents/copy
func (h *Handlers) CopyDocument(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req posting.CopyDocumentRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	doc, err := h.service.CopyDocument(c.Context(), authContext.UserID, postingID(c, "postingId"), req.Name)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// DownloadDocument streams a stored document
// GET /api/me/documents/:name
// GET /api/applications/:postingId/documents/:name
func (h *Handlers) DownloadDocument(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	doc, data, err := h.service.ReadDocument(c.Context(), authContext.UserID, postingID(c, "postingId"), documentName(c))
	if err != nil {
		return err
	}

	if doc.ContentType != "" {
		c.Set(fiber.HeaderContentType, doc.ContentType)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Name))
	return c.Send(data)
}

// RemoveDocument deletes a document from an editable store
// DELETE /api/me/documents/:name
// DELETE /api/applications/:postingId/documents/:name
func (h *Handlers) RemoveDocument(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.RemoveDocument(c.Context(), authContext.UserID, postingID(c, "postingId"), documentName(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ============================================================================
// Clock
// ============================================================================

// Clock reports the board's current day
// GET /api/clock
func (h *Handlers) Clock(c *fiber.Ctx) error {
	return c.JSON(h.service.Clock())
}

// Tick runs the daily housekeeping now
// POST /api/clock/tick
func (h *Handlers) Tick(c *fiber.Ctx) error {
	report, err := h.service.Tick(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// AdvanceClock moves a simulated clock forward and ticks
// POST /api/clock/advance
func (h *Handlers) AdvanceClock(c *fiber.Ctx) error {
	var req board.AdvanceClockRequest
	if err := h.parse(c, &req); err != nil {
		return err
	}

	report, err := h.service.AdvanceClock(c.Context(), req.Days)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// ============================================================================
// Helpers
// ============================================================================

// parse decodes the body into req and validates it.
func (h *Handlers) parse(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return board.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if err := h.validate.Struct(req); err != nil {
		return board.ErrInvalidRequest().WithDetail("fields", validationMessages(err))
	}
	return nil
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s: failed %s=%s", e.Field(), e.Tag(), e.Param()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s: failed %s", e.Field(), e.Tag()))
	}
	return messages
}

func postingID(c *fiber.Ctx, param string) kernel.PostingID {
	return kernel.PostingID(c.Params(param))
}

func documentName(c *fiber.Ctx) string {
	name := c.Params("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}
