package user

import (
	"net/http"

	"github.com/Abraxas-365/hireflow/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("USER")

// Error codes
var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeUserAlreadyExists  = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "User already exists")
	CodeNotEmployee        = ErrRegistry.Register("NOT_EMPLOYEE", errx.TypeBusiness, http.StatusForbidden, "User is not an employee")
	CodeNotApplicant       = ErrRegistry.Register("NOT_APPLICANT", errx.TypeBusiness, http.StatusForbidden, "User is not an applicant")
	CodeWrongEmployeeType  = ErrRegistry.Register("WRONG_EMPLOYEE_TYPE", errx.TypeBusiness, http.StatusForbidden, "Employee type does not support this operation")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid username or password")
	CodePasswordRequired   = ErrRegistry.Register("PASSWORD_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Password is required")
	CodeInvalidEmail       = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Email format is invalid")
	CodeInvalidUserType    = ErrRegistry.Register("INVALID_USER_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unknown user type")
)

// Helper functions
func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrUserAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeUserAlreadyExists)
}

func ErrNotEmployee() *errx.Error {
	return ErrRegistry.New(CodeNotEmployee)
}

func ErrNotApplicant() *errx.Error {
	return ErrRegistry.New(CodeNotApplicant)
}

func ErrWrongEmployeeType() *errx.Error {
	return ErrRegistry.New(CodeWrongEmployeeType)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrPasswordRequired() *errx.Error {
	return ErrRegistry.New(CodePasswordRequired)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidUserType() *errx.Error {
	return ErrRegistry.New(CodeInvalidUserType)
}
