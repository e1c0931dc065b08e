package adapter

import "errors"

// Errors mapped from HTTP status codes. The server's response text follows
// the sentinel after ": ".
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

var (
	// ErrTransport wraps failures to reach the server at all.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse is returned when a 2xx response lacks what the
	// API promises, such as the bearer token of a login.
	ErrMalformedResponse = errors.New("malformed server response")
)
