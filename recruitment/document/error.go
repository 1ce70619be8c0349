package document

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("DOCUMENT")

// Error codes
var (
	CodeNotEditable   = ErrRegistry.Register("NOT_EDITABLE", errx.TypeBusiness, http.StatusConflict, "Document store is locked")
	CodeEmptyName     = ErrRegistry.Register("EMPTY_NAME", errx.TypeValidation, http.StatusBadRequest, "Document name is empty")
	CodeAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Document already exists")
	CodeNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Document not found")
)

func ErrNotEditable() *errx.Error {
	return ErrRegistry.New(CodeNotEditable)
}

func ErrEmptyName() *errx.Error {
	return ErrRegistry.New(CodeEmptyName)
}

func ErrAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeAlreadyExists)
}

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}
