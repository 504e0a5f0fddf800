package factorio

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Sentinel errors for backend operations.
var (
	// ErrInvalidResponse is returned when a payload does not match its declared shape.
	ErrInvalidResponse = errors.New("invalid API response")

	// ErrEmptyCommand is returned when an RCON command is blank.
	ErrEmptyCommand = errors.New("command cannot be empty")
)

// UnknownErrorDetail is shown when a failure response carries no detail.
const UnknownErrorDetail = "Unknown error"

// TransportError means no response was obtained from the backend.
type TransportError struct {
	Op  string
	Err error
}

// Error returns the error message.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError means a response was obtained but it reports a failure
// or could not be understood.
type ApplicationError struct {
	StatusCode int
	Detail     string
	Err        error
}

// Error returns the error message.
func (e *ApplicationError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%v (status %d)", e.Err, e.StatusCode)
	default:
		return fmt.Sprintf("%s (status %d)", UnknownErrorDetail, e.StatusCode)
	}
}

// Unwrap returns the wrapped cause, if any.
func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// Message returns the server supplied detail or UnknownErrorDetail.
func (e *ApplicationError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return UnknownErrorDetail
}

// NewApplicationError creates a new ApplicationError.
func NewApplicationError(statusCode int, detail string) *ApplicationError {
	return &ApplicationError{
		StatusCode: statusCode,
		Detail:     detail,
	}
}

// parseErrorResponse builds an ApplicationError from a non-2xx body.
// Bodies that are not JSON or have no string detail yield an empty detail.
func parseErrorResponse(statusCode int, body []byte) error {
	appErr := &ApplicationError{StatusCode: statusCode}
	if gjson.ValidBytes(body) {
		if detail := gjson.GetBytes(body, "detail"); detail.Type == gjson.String {
			appErr.Detail = detail.String()
		}
	}
	return appErr
}

// invalidResponse wraps ErrInvalidResponse for a 2xx payload that failed validation.
func invalidResponse(format string, args ...any) error {
	return &ApplicationError{
		StatusCode: http.StatusOK,
		Err:        fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...)),
	}
}

// IsTransportError reports whether err is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsApplicationError reports whether err is an ApplicationError.
func IsApplicationError(err error) bool {
	var ae *ApplicationError
	return errors.As(err, &ae)
}
