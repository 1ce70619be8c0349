package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of the package that raised it.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code is a fully qualified error code, e.g. "POSTING.WRONG_STATUS".
type Code string

func (c Code) String() string { return string(c) }

// Error is the error value shared by every package of the service.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches two *Error values by code so errors.Is works across copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns the error with an extra detail entry.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges the given entries into the error details.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// ToHTTPResponse renders the error as a JSON friendly body.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// ============================================================================
// Registry
// ============================================================================

type definition struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one package under a common prefix.
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same code twice panics, since it
// can only happen at init time.
func (r *Registry) Register(code string, typ Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[full]; exists {
		panic("errx: duplicate error code " + string(full))
	}
	r.defs[full] = definition{typ: typ, httpStatus: httpStatus, message: message}
	return full
}

// New builds a fresh error for a registered code.
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause builds an error for code wrapping err.
func (r *Registry) NewWithCause(code Code, err error) *Error {
	return r.New(code).WithCause(err)
}

// ============================================================================
// Helpers
// ============================================================================

// New creates an ad-hoc error outside of any registry.
func New(message string, typ Type) *Error {
	return &Error{
		Code:       Code(typ),
		Type:       typ,
		Message:    message,
		HTTPStatus: statusFor(typ),
	}
}

// Wrap annotates err. An *Error keeps its code and status; anything else
// becomes a new error of the given type.
func Wrap(err error, message string, typ Type) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:       Code(typ),
		Type:       typ,
		Message:    message,
		HTTPStatus: statusFor(typ),
		Cause:      err,
	}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, typ Type) bool {
	e, ok := As(err)
	return ok && e.Type == typ
}

func statusFor(typ Type) int {
	switch typ {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
