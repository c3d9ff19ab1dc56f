// errors builds HTTP errors of the API.
//
// Error responses are JSON like `{"message": {"reason": "...", "advice": "..."}}`.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bearnovel/bearnovel/pkg/cache"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message ErrorMessage `json:"message"`
}

type ErrorMessage struct {
	Reason string `json:"reason"`
	Advice string `json:"advice,omitempty"`
	Cause  error  `json:"-"`
}

func (e ErrorMessage) String() string {
	lines := []string{e.Reason}
	if e.Advice != "" {
		lines = append(lines, e.Advice)
	}
	if e.Cause != nil {
		lines = append(lines, fmt.Sprint(" caused by:", e.Cause.Error()))
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

type ErrorMessageOption func(in *ErrorMessage) *ErrorMessage

func WithAdvice(advice string) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if advice != "" {
			in.Advice = advice
		}
		return in
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

// NewErrorMessage creates HTTPError with ErrorMessage as its message.
//
// The response body is ErrorResponse.
func NewErrorMessage(code int, reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := ErrorMessage{Reason: reason}
	for _, opt := range opts {
		msg = *opt(&msg)
	}

	return echo.NewHTTPError(code, ErrorResponse{Message: msg}).SetInternal(msg)
}

func ServiceUnavailable(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusServiceUnavailable,
		"service unavailable temporarily",
		WithAdvice(advice),
		WithError(err),
	)
}

func NotFound(err error) *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, "not found", WithError(err))
}

func BadRequest(advice string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadRequest,
		"bad request",
		WithAdvice(advice),
		WithError(err),
	)
}

func Conflict(message string, options ...ErrorMessageOption) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusConflict,
		message,
		options...,
	)
}

func Forbidden(message string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusForbidden,
		message,
		WithError(err),
	)
}

func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError,
		"unexpected error",
		WithError(err),
	)
}

func Unauthorized(message string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusUnauthorized,
		message,
		WithError(err),
	)
}

func TooManyRequests() *echo.HTTPError {
	return NewErrorMessage(
		http.StatusTooManyRequests,
		"too many requests",
		WithAdvice("retry later."),
	)
}

// FromError converts errors from services into HTTPError.
//
// Errors not known are treated as internal server error.
func FromError(err error) *echo.HTTPError {
	if he := new(echo.HTTPError); errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, domain.ErrInvalid):
		return BadRequest(reasonOf(err), err)
	case errors.Is(err, kdb.ErrMissing):
		return NotFound(err)
	case errors.Is(err, kdb.ErrConflict):
		return Conflict("conflict", WithError(err))
	case errors.Is(err, domain.ErrForbidden):
		return Forbidden("forbidden", err)
	case errors.Is(err, domain.ErrUnauthenticated):
		return Unauthorized("unauthorized", err)
	case errors.Is(err, cache.ErrUnavailable):
		return ServiceUnavailable("retry later.", err)
	default:
		return InternalServerError(err)
	}
}

// reasonOf takes the first line of error message, to be shown to client.
func reasonOf(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
