// Package serviceerr defines the error taxonomy shared by the data manager,
// its repositories and the API servers.
package serviceerr

import "net/http"

// Code is a machine readable error code as exposed by the HTTP API.
type Code string

const (
	CodeInvalidRequest Code = "invalid_request"
	CodeUnknown        Code = "unknown"
	CodeConflict       Code = "conflict"
	CodeNotFound       Code = "not_found"

	CodeNoActiveSession   Code = "no_active_session"
	CodeRemoteFailure     Code = "remote_failure"
	CodeLocalStoreFailure Code = "local_store_failure"
	CodeCancelled         Code = "cancelled"
)

// Error is an error carrying a Code and an optional human readable description.
type Error struct {
	Err         Code
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Err)
	}

	return string(e.Err) + ": " + e.Description
}

// HTTPStatus maps the error code onto the status returned by the HTTP API.
func (e *Error) HTTPStatus() int {
	switch e.Err {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeNoActiveSession:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRemoteFailure:
		return http.StatusBadGateway
	case CodeCancelled:
		return http.StatusRequestTimeout
	case CodeLocalStoreFailure, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrInvalidRequest = &Error{Err: CodeInvalidRequest}
	ErrUnknown        = &Error{Err: CodeUnknown, Description: "unknown error"}
	ErrConflict       = &Error{Err: CodeConflict, Description: "already exists"}
	ErrNotFound       = &Error{Err: CodeNotFound, Description: "not found"}

	// ErrNoActiveSession is returned by every session scoped operation while no
	// client id is set. It is never replaced by a default scope.
	ErrNoActiveSession = &Error{Err: CodeNoActiveSession, Description: "no active session"}
	// ErrRemoteFailure classifies any failure of the remote banking API.
	ErrRemoteFailure = &Error{Err: CodeRemoteFailure, Description: "remote banking api call failed"}
	// ErrLocalStoreFailure classifies a failed cache read or write.
	ErrLocalStoreFailure = &Error{Err: CodeLocalStoreFailure, Description: "local store operation failed"}
	// ErrCancelled is returned when the caller cancelled the operation. No
	// cache mutation happened.
	ErrCancelled = &Error{Err: CodeCancelled, Description: "operation cancelled"}
)
