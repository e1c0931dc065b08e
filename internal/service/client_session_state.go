// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/pos-backoffice/models"

// SessionStatus is the client-observable authentication state.
type SessionStatus int

const (
	// SessionLoading is the initial state, until the persisted credential
	// was resolved.
	SessionLoading SessionStatus = iota
	SessionAnonymous
	SessionAuthenticated
)

func (s SessionStatus) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionState is a snapshot of the session. User is only set while
// Status is SessionAuthenticated.
type SessionState struct {
	Status SessionStatus
	User   models.User
}

// AuthResult is the outcome of a login or registration.
type AuthResult struct {
	Success bool

	// Message is the server's response text on failure, or the transport
	// error text when the server could not be reached.
	Message string

	// Err is the classified failure, for errors.Is.
	Err error

	// User is the account returned by the server on success.
	User models.User
}
