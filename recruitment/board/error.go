package board

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("BOARD")

var (
	CodeClockNotSimulated = ErrRegistry.Register("CLOCK_NOT_SIMULATED", errx.TypeBusiness, http.StatusConflict, "The clock can only be moved in simulated mode")
	CodeInvalidDays       = ErrRegistry.Register("INVALID_DAYS", errx.TypeValidation, http.StatusBadRequest, "Days must be a positive number")
	CodeSnapshotCorrupted = ErrRegistry.Register("SNAPSHOT_CORRUPTED", errx.TypeInternal, http.StatusInternalServerError, "Stored board snapshot could not be read")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeFileRequired      = ErrRegistry.Register("FILE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "A file upload is required")
	CodeFileTooLarge      = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
)

func ErrClockNotSimulated() *errx.Error {
	return ErrRegistry.New(CodeClockNotSimulated)
}

func ErrInvalidDays() *errx.Error {
	return ErrRegistry.New(CodeInvalidDays)
}

func ErrSnapshotCorrupted() *errx.Error {
	return ErrRegistry.New(CodeSnapshotCorrupted)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrFileRequired() *errx.Error {
	return ErrRegistry.New(CodeFileRequired)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}
