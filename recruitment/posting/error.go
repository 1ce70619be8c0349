package posting

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("POSTING")

// Error codes
var (
	CodePostingNotFound          = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job posting not found")
	CodeApplicationNotFound      = ErrRegistry.Register("APPLICATION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeInterviewNotFound        = ErrRegistry.Register("INTERVIEW_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview not found")
	CodeWrongApplicationStatus   = ErrRegistry.Register("WRONG_APPLICATION_STATUS", errx.TypeBusiness, http.StatusConflict, "Application is not in the required status")
	CodeWrongInterviewStatus     = ErrRegistry.Register("WRONG_INTERVIEW_STATUS", errx.TypeBusiness, http.StatusConflict, "Interview is not in the required status")
	CodeWrongPostingStatus       = ErrRegistry.Register("WRONG_POSTING_STATUS", errx.TypeBusiness, http.StatusConflict, "Job posting is not in the required status")
	CodeWrongRoundStatus         = ErrRegistry.Register("WRONG_ROUND_STATUS", errx.TypeBusiness, http.StatusConflict, "Interview round is not finished")
	CodeApplicationAlreadyExists = ErrRegistry.Register("APPLICATION_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Application already exists")
	CodeRoundAlreadyExists       = ErrRegistry.Register("ROUND_ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Interview round already exists")
	CodeNextRoundDoesNotExist    = ErrRegistry.Register("NEXT_ROUND_DOES_NOT_EXIST", errx.TypeBusiness, http.StatusConflict, "There is no next interview round")
	CodePostingAlreadyFilled     = ErrRegistry.Register("POSTING_ALREADY_FILLED", errx.TypeBusiness, http.StatusConflict, "All positions are already filled")
	CodeInvalidDetails           = ErrRegistry.Register("INVALID_DETAILS", errx.TypeValidation, http.StatusBadRequest, "Invalid job posting details")
	CodeInvalidRoundName         = ErrRegistry.Register("INVALID_ROUND_NAME", errx.TypeValidation, http.StatusBadRequest, "Interview round name is empty")
	CodeInvalidInterviewResult   = ErrRegistry.Register("INVALID_INTERVIEW_RESULT", errx.TypeValidation, http.StatusBadRequest, "Interview result must be PASS or FAIL")
	CodeApplicationNotDeletable  = ErrRegistry.Register("APPLICATION_NOT_DELETABLE", errx.TypeBusiness, http.StatusConflict, "Only draft applications can be deleted")
	CodeInsufficientPermissions  = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

// Helper functions
func ErrPostingNotFound() *errx.Error {
	return ErrRegistry.New(CodePostingNotFound)
}

func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrInterviewNotFound() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotFound)
}

func ErrWrongApplicationStatus(expected, actual ApplicationStatus) *errx.Error {
	return ErrRegistry.New(CodeWrongApplicationStatus).
		WithDetail("expected", expected).
		WithDetail("actual", actual)
}

func ErrWrongInterviewStatus(expected, actual InterviewStatus) *errx.Error {
	return ErrRegistry.New(CodeWrongInterviewStatus).
		WithDetail("expected", expected).
		WithDetail("actual", actual)
}

func ErrWrongPostingStatus(expected, actual Status) *errx.Error {
	return ErrRegistry.New(CodeWrongPostingStatus).
		WithDetail("expected", expected).
		WithDetail("actual", actual)
}

func ErrWrongRoundStatus(round string, actual RoundStatus) *errx.Error {
	return ErrRegistry.New(CodeWrongRoundStatus).
		WithDetail("round", round).
		WithDetail("expected", RoundStatusFinished).
		WithDetail("actual", actual)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
}

func ErrRoundAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeRoundAlreadyExists)
}

func ErrNextRoundDoesNotExist() *errx.Error {
	return ErrRegistry.New(CodeNextRoundDoesNotExist)
}

func ErrPostingAlreadyFilled() *errx.Error {
	return ErrRegistry.New(CodePostingAlreadyFilled)
}

func ErrInvalidDetails() *errx.Error {
	return ErrRegistry.New(CodeInvalidDetails)
}

func ErrInvalidRoundName() *errx.Error {
	return ErrRegistry.New(CodeInvalidRoundName)
}

func ErrInvalidInterviewResult() *errx.Error {
	return ErrRegistry.New(CodeInvalidInterviewResult)
}

func ErrApplicationNotDeletable() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotDeletable)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
