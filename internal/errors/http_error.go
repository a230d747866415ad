package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int    `json:"-"`
	Title   string `json:"error"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message. The
// title defaults to the status text.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Title:   http.StatusText(code),
		Message: message,
	}
}

// WithTitle overrides the short title shown to the user.
func (e *HTTPError) WithTitle(title string) *HTTPError {
	e.Title = title
	return e
}

// Helper for common errors
var (
	ErrBadRequest   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
	ErrForbidden    = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, msg) }
	ErrNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrInternal     = func(msg string) *HTTPError { return NewHTTPError(http.StatusInternalServerError, msg) }
)
