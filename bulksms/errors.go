package bulksms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid bulksms configuration")
)

// Stage identifies where in a request's lifecycle a failure happened.
type Stage string

const (
	StageRequest    Stage = "request"
	StageValidation Stage = "validation"
	StageResponse   Stage = "response"
	StageNetwork    Stage = "network"
)

// ErrorContext describes which operation failed and how far it got.
// Zero fields are treated as unset when contexts are merged.
type ErrorContext struct {
	Service   string
	Operation string
	Stage     Stage
	Method    string
	Path      string
	URL       string
	Retries   int
}

// merge returns c overlaid with the non-zero fields of other.
func (c ErrorContext) merge(other ErrorContext) ErrorContext {
	if other.Service != "" {
		c.Service = other.Service
	}
	if other.Operation != "" {
		c.Operation = other.Operation
	}
	if other.Stage != "" {
		c.Stage = other.Stage
	}
	if other.Method != "" {
		c.Method = other.Method
	}
	if other.Path != "" {
		c.Path = other.Path
	}
	if other.URL != "" {
		c.URL = other.URL
	}
	if other.Retries != 0 {
		c.Retries = other.Retries
	}
	return c
}

// Error is the structured error returned by every bulksms operation.
//
// StatusCode is 0 for network and response-shape failures, 408 for client
// side timeouts and the HTTP status otherwise. Data holds the decoded
// response body when one was available.
type Error struct {
	Message    string
	StatusCode int
	Data       any
	Context    ErrorContext
	cause      error
}

// ErrorOption configures an Error during construction.
type ErrorOption func(*Error)

// WithData attaches the raw response payload.
func WithData(data any) ErrorOption {
	return func(e *Error) { e.Data = data }
}

// WithCause sets the underlying cause returned by Unwrap.
func WithCause(cause error) ErrorOption {
	return func(e *Error) { e.cause = cause }
}

// WithErrorContext sets the initial context.
func WithErrorContext(ctx ErrorContext) ErrorOption {
	return func(e *Error) { e.Context = ctx }
}

// NewError creates an Error with the given message and status code.
func NewError(message string, statusCode int, opts ...ErrorOption) *Error {
	e := &Error{
		Message:    message,
		StatusCode: statusCode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Detail renders the message together with status and context, for logs.
func (e *Error) Detail() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (status %d", e.Message, e.StatusCode)
	if e.Context.Stage != "" {
		fmt.Fprintf(&b, ", stage %s", e.Context.Stage)
	}
	if e.Context.Service != "" || e.Context.Operation != "" {
		fmt.Fprintf(&b, ", op %s.%s", e.Context.Service, e.Context.Operation)
	}
	if e.Context.Method != "" || e.Context.Path != "" {
		fmt.Fprintf(&b, ", %s %s", e.Context.Method, e.Context.Path)
	}
	if e.Context.Retries > 0 {
		fmt.Fprintf(&b, ", retries %d", e.Context.Retries)
	}
	b.WriteString(")")
	return b.String()
}

// WithContext returns a copy of e whose context is merged with ctx. Fields
// set in ctx win; everything else, including the cause, is kept.
func (e *Error) WithContext(ctx ErrorContext) *Error {
	clone := *e
	clone.Context = e.Context.merge(ctx)
	return &clone
}

// IsTimeout reports a client-side timeout.
func (e *Error) IsTimeout() bool {
	return e.StatusCode == http.StatusRequestTimeout
}

// IsNetwork reports a failure where no HTTP response was obtained.
func (e *Error) IsNetwork() bool {
	return e.StatusCode == 0 && e.Context.Stage == StageNetwork
}

// IsRateLimited reports a 429 that survived every retry.
func (e *Error) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsValidation reports a failure raised before the request was sent or
// while checking the response shape.
func (e *Error) IsValidation() bool {
	return e.Context.Stage == StageValidation
}

// FromUnknown normalizes any error into an *Error. An existing *Error keeps
// its fields and gets ctx merged in; any other error becomes the cause of a
// new Error that reuses its message. A nil err yields fallbackMessage.
func FromUnknown(err error, fallbackMessage string, fallbackStatus int, ctx ErrorContext, data any) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.WithContext(ctx)
	}
	if err == nil {
		return NewError(fallbackMessage, fallbackStatus, WithErrorContext(ctx), WithData(data))
	}
	message := err.Error()
	if message == "" {
		message = fallbackMessage
	}
	return NewError(message, fallbackStatus, WithErrorContext(ctx), WithData(data), WithCause(err))
}

// AnnotateResult stamps ctx onto the error of a failed result and passes
// successful results through untouched.
func AnnotateResult[T any](r Result[T], ctx ErrorContext) Result[T] {
	if r.IsOk() {
		return r
	}
	e, _ := r.Error()
	return failure[T](e.WithContext(ctx))
}

func timeoutError(ctx ErrorContext, cause error) *Error {
	ctx.Stage = StageNetwork
	return NewError("Request timeout", http.StatusRequestTimeout, WithErrorContext(ctx), WithCause(cause))
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// validationError is raised for client-side rejections that never reach
// the network.
func validationError(message string, ctx ErrorContext) *Error {
	ctx.Stage = StageValidation
	return NewError(message, http.StatusBadRequest, WithErrorContext(ctx))
}

// shapeError is raised when a successful response does not have the
// expected shape.
func shapeError(entity string, raw any, ctx ErrorContext) *Error {
	ctx.Stage = StageValidation
	return NewError(fmt.Sprintf("Invalid %s response format", entity), 0, WithErrorContext(ctx), WithData(raw))
}
