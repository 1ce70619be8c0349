package fsx

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("FSX")

var (
	CodeFileNotFound = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidPath  = ErrRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid file path")
)

func ErrFileNotFound(path string) *errx.Error {
	return ErrRegistry.New(CodeFileNotFound).WithDetail("path", path)
}

func ErrInvalidPath(path string) *errx.Error {
	return ErrRegistry.New(CodeInvalidPath).WithDetail("path", path)
}
