package errx

import (
	"fmt"
	"sync"
)

// Code is a registered, domain-prefixed error code such as "CAREER.NOT_FOUND"
type Code string

func (c Code) String() string { return string(c) }

type definition struct {
	typ     Type
	status  int
	message string
}

// Registry holds the error codes of one domain
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

// Register declares a code. It panics on duplicates since codes are declared at init.
func (r *Registry) Register(name string, t Type, status int, message string) Code {
	code := Code(fmt.Sprintf("%s.%s", r.prefix, name))

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[code]; exists {
		panic(fmt.Sprintf("errx: duplicate code %s", code))
	}
	r.defs[code] = definition{typ: t, status: status, message: message}
	return code
}

// New creates an error for a registered code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return &Error{
			Code:       code.String(),
			Type:       TypeInternal,
			HTTPStatus: TypeInternal.DefaultStatus(),
			Message:    "unregistered error code",
		}
	}
	return &Error{
		Code:       code.String(),
		Type:       def.typ,
		HTTPStatus: def.status,
		Message:    def.message,
	}
}

// NewWithCause creates an error for a registered code wrapping cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}
