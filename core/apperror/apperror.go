package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error and selects its HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindForbidden
	KindUnauthorized
)

// Error is a domain error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	// Details lists per-field reasons for validation failures.
	Details []string
	// Internal is the underlying cause. It is never sent to clients.
	Internal error
}

func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Internal
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// NotFound creates an error for a missing resource.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest creates an error for a rejected payload or query.
func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a BadRequest whose message joins every field reason.
func Validation(details []string) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Message: strings.Join(details, ", "),
		Details: details,
	}
}

// Forbidden creates an error for an actor lacking permission.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Unauthorized creates an error for a missing or invalid credential.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Internal: err}
}

// Is reports whether err carries an application error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Body is the JSON error envelope.
type Body struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Respond writes err as a JSON error body. Errors that are not *Error are
// reported as a generic internal error.
func Respond(c *fiber.Ctx, err error) error {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("Internal server error", err)
	}
	body := Body{Message: appErr.Message, Details: appErr.Details}
	if appErr.Kind == KindInternal {
		body = Body{Message: "Internal server error"}
	}
	return c.Status(appErr.Status()).JSON(body)
}

// Handler is a fiber.ErrorHandler that renders errors returned by handlers.
func Handler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(Body{Message: fiberErr.Message})
	}
	return Respond(c, err)
}
