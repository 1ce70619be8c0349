package company

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("COMPANY")

// Error codes
var (
	CodeCompanyAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Company already exists")
	CodeCompanyDoesNotExist  = ErrRegistry.Register("DOES_NOT_EXIST", errx.TypeNotFound, http.StatusNotFound, "Company does not exist")
)

func ErrCompanyAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCompanyAlreadyExists)
}

func ErrCompanyDoesNotExist() *errx.Error {
	return ErrRegistry.New(CodeCompanyDoesNotExist)
}
