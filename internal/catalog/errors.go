package catalog

// Typed failures surfaced by the remote catalog client. The store catches
// all of these and turns them into a display message; none of them reach
// the view as a fault.

import (
	"errors"
	"fmt"
)

// NetworkError is a transport-level failure: the request never produced an
// HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a 401: the bearer token was missing, expired, or rejected.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("not authorized: %s", e.Message)
	}
	return "not authorized"
}

// NotFoundError is a 404 on update or delete: the token id no longer exists.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("token %s not found", e.ID)
}

// ValidationError is a 4xx on create or update: the server rejected one or
// more fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rejected by server: %s", e.Message)
	}
	return "rejected by server"
}

// ServerError covers 5xx and any other unexpected status.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// FriendlyMessage turns a client failure into a short status-line message
// with a usable hint.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Could not reach the token service. Check your connection and server URL."
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		return "Session rejected. Log in again with `tokdeck login`."
	}

	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return "That token no longer exists on the server. The list will refresh."
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if valErr.Message != "" {
			return "Rejected: " + valErr.Message
		}
		return "The server rejected the submitted fields."
	}

	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return fmt.Sprintf("The token service returned HTTP %d. Try again.", srvErr.Status)
	}

	return err.Error()
}
