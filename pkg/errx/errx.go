package errx

import (
	"fmt"
	"net/http"
	"sync"
)

// Type classifies an error for transport mapping and logging.
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeBusiness       Type = "BUSINESS"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeExternal       Type = "EXTERNAL"
	TypeInternal       Type = "INTERNAL"
)

// Code identifies a registered error definition. The value is the full
// code string, prefixed with the registry name (e.g. "CANDIDATE_NOT_FOUND").
type Code string

type definition struct {
	code       Code
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions of one domain.
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given name.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register adds an error definition and returns its full code.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.mu.Lock()
	r.defs[full] = definition{
		code:       full,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	r.mu.Unlock()
	return full
}

// New creates an error from a registered code.
func (r *Registry) New(code Code) *Error {
	return r.build(code, nil)
}

// NewWithCause creates an error from a registered code wrapping a cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	return r.build(code, cause)
}

func (r *Registry) build(code Code, cause error) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		def = definition{
			code:       code,
			errType:    TypeInternal,
			httpStatus: http.StatusInternalServerError,
			message:    "Unknown error",
		}
	}
	return &Error{
		Code:       def.code,
		Type:       def.errType,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
		cause:      cause,
	}
}

// Error is a structured domain error.
type Error struct {
	Code       Code
	Type       Type
	Message    string
	HTTPStatus int
	Details    map[string]any

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair and returns the same error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches all pairs and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// HTTPResponse is the wire shape of an error body.
type HTTPResponse struct {
	Error   string         `json:"error"`
	Type    string         `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToHTTPResponse renders the error as a response body. The cause is
// deliberately omitted; it is for logs, not clients.
func (e *Error) ToHTTPResponse() HTTPResponse {
	return HTTPResponse{
		Error:   e.Message,
		Type:    string(e.Type),
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Details,
	}
}

// Wrap converts an arbitrary error into an *Error of the given type,
// keeping the original as the cause. Already-structured errors pass
// through untouched so their code and status survive layer crossings.
func Wrap(err error, message string, errType Type) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{
		Code:       Code(string(errType) + "_ERROR"),
		Type:       errType,
		Message:    message,
		HTTPStatus: statusForType(errType),
		cause:      err,
	}
}

func statusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeAuthentication:
		return http.StatusUnauthorized
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
