package httpx

import (
	"fmt"
	"net/http"
)

// Error is a machine-readable API error: a stable code plus a human-readable
// description. It implements the error interface and knows how to write
// itself as an HTTP response, so handlers map service failures in one line.
type Error struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the stable error code clients switch on.
	Code string `json:"error"`

	// Description is a human-readable description of the error.
	Description string `json:"error_description"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this Error to an HTTP response writer.
func (e *Error) WriteError(w http.ResponseWriter) {
	NoCache(w)
	WriteJSON(w, e.StatusCode, e)
}

// WithDescription returns a copy with a more specific description, keeping
// the predefined code and status.
func (e *Error) WithDescription(desc string) *Error {
	clone := *e
	clone.Description = desc
	return &clone
}

var (
	// ErrInvalidRequest is returned when the request is missing a required
	// parameter or is otherwise malformed.
	ErrInvalidRequest = &Error{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// user from a wrong password.
	ErrInvalidCredentials = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_credentials",
		Description: "invalid username or password",
	}

	// ErrAuthenticationRequired is returned on guarded endpoints that cannot
	// redirect, when no valid session accompanies the request.
	ErrAuthenticationRequired = &Error{
		StatusCode:  http.StatusUnauthorized,
		Code:        "authentication_required",
		Description: "you must be logged in to do this",
	}

	// ErrPermissionDenied is returned when a valid session does not own the
	// target resource.
	ErrPermissionDenied = &Error{
		StatusCode:  http.StatusForbidden,
		Code:        "permission_denied",
		Description: "you do not have permission to modify this resource",
	}

	// ErrNotFound is returned when the target resource does not exist.
	ErrNotFound = &Error{
		StatusCode:  http.StatusNotFound,
		Code:        "not_found",
		Description: "the requested resource does not exist",
	}

	// ErrUsernameTaken is returned on signup with a registered username.
	ErrUsernameTaken = &Error{
		StatusCode:  http.StatusConflict,
		Code:        "username_taken",
		Description: "that username is already registered",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "something went wrong",
	}
)
