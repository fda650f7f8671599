package errx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error independently of the aggregate that raised it
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// DefaultStatus returns the HTTP status used when an error of this type
// carries no registered status.
func (t Type) DefaultStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code is a registry-qualified error code, e.g. LISTING_NOT_FOUND
type Code string

func (c Code) String() string { return string(c) }

// Error is the error value returned across package boundaries
type Error struct {
	Type       Type           `json:"type"`
	Code       Code           `json:"code"`
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

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value pair rendered in the HTTP response
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// HTTPResponse is the JSON body written for an *Error
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    Type           `json:"type"`
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse renders the error for API clients. Causes are never exposed.
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Error:   http.StatusText(e.HTTPStatus),
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}

// ============================================================================
// Registry
// ============================================================================

type definition struct {
	typ     Type
	status  int
	message string
}

// Registry groups the error codes of one aggregate under a common prefix
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code and returns its qualified value
func (r *Registry) Register(name string, typ Type, status int, message string) Code {
	code := Code(r.prefix + "_" + name)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[code] = definition{typ: typ, status: status, message: message}
	return code
}

// New builds an error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &Error{
		Type:       def.typ,
		Code:       code,
		Message:    def.message,
		HTTPStatus: def.status,
	}
}

// NewWithCause builds an error for a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// ============================================================================
// Package helpers
// ============================================================================

// New creates an unregistered error of the given type
func New(message string, typ Type) *Error {
	return &Error{
		Type:       typ,
		Code:       Code(typ),
		Message:    message,
		HTTPStatus: typ.DefaultStatus(),
	}
}

// Wrap wraps err with a message and a type
func Wrap(err error, message string, typ Type) *Error {
	return New(message, typ).WithCause(err)
}

// Propagate returns the *Error carried by err unchanged, or wraps err as typ
// when it carries none. Domain errors raised by lower layers keep their code.
func Propagate(err error, message string, typ Type) *Error {
	if e, ok := As(err); ok {
		return e
	}
	return Wrap(err, message, typ)
}

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether any *Error in err's chain carries code
func IsCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// IsType reports whether the outermost *Error in err's chain has type typ
func IsType(err error, typ Type) bool {
	e, ok := As(err)
	return ok && e.Type == typ
}
