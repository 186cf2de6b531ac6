package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error independently of the domain that raised it
type Type string

const (
	TypeInternal      Type = "INTERNAL"
	TypeBusiness      Type = "BUSINESS"
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeUnauthorized  Type = "UNAUTHORIZED"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeExternal      Type = "EXTERNAL"
)

// DefaultStatus returns the HTTP status a type maps to when none was registered
func (t Type) DefaultStatus() int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeUnauthorized:
		return http.StatusUnauthorized
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

// Error is the structured error returned across service boundaries
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// New creates an unregistered error
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: t.DefaultStatus(),
		Message:    message,
	}
}

// Wrap wraps err with a message and type. A nil err yields nil.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	e := New(message, t)
	e.Cause = err
	return e
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

// Is matches another *Error by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail returns a copy of e with key set in its details
func (e *Error) WithDetail(key string, value any) *Error {
	c := e.clone()
	c.Details[key] = value
	return c
}

// WithDetails returns a copy of e with all entries merged into its details
func (e *Error) WithDetails(details map[string]any) *Error {
	c := e.clone()
	for k, v := range details {
		c.Details[k] = v
	}
	return c
}

// WithCause returns a copy of e wrapping err
func (e *Error) WithCause(err error) *Error {
	c := e.clone()
	c.Cause = err
	return c
}

// ToHTTPResponse renders the error body sent to API clients
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

func (e *Error) clone() *Error {
	c := *e
	c.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		c.Details[k] = v
	}
	return &c
}

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err carries the given registered code
func IsCode(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code.String()
}

// IsType reports whether err is an *Error of type t
func IsType(err error, t Type) bool {
	e, ok := As(err)
	return ok && e.Type == t
}
